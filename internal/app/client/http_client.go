package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/app/client/config"
	"hospitalsched/internal/domain/schedule"
)

var (
	// ErrNetwork сервер недоступен: транспортная ошибка или таймаут.
	ErrNetwork = errors.New("server unreachable")
	// ErrServer сервер ответил 5xx.
	ErrServer       = errors.New("server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// IsTransient ошибки, при которых мутация уходит в офлайн-очередь.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrServer)
}

type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		token:     cfg.LoadToken(),
		userAgent: "hospitalsched-client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *HTTPClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *HTTPClient) Create(ctx context.Context, req schedule.CreateRequest) (schedule.Schedule, error) {
	var out schedule.Schedule
	resp, err := h.doRequest(ctx, http.MethodPost, "/schedules", req)
	if err != nil {
		return out, err
	}

	return out, h.parseResponse(resp, &out)
}

func (h *HTTPClient) Update(ctx context.Context, id string, req schedule.UpdateRequest) (schedule.Schedule, error) {
	var out schedule.Schedule
	resp, err := h.doRequest(ctx, http.MethodPatch, "/schedules/"+url.PathEscape(id), req)
	if err != nil {
		return out, err
	}

	return out, h.parseResponse(resp, &out)
}

func (h *HTTPClient) Delete(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/schedules/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *HTTPClient) Get(ctx context.Context, id string) (schedule.Schedule, error) {
	var out schedule.Schedule
	resp, err := h.doRequest(ctx, http.MethodGet, "/schedules/"+url.PathEscape(id), nil)
	if err != nil {
		return out, err
	}

	return out, h.parseResponse(resp, &out)
}

func (h *HTTPClient) List(ctx context.Context, q schedule.ListQuery) (schedule.Page, error) {
	var out schedule.Page
	resp, err := h.doRequest(ctx, http.MethodGet, "/schedules"+listValues(q), nil)
	if err != nil {
		return out, err
	}

	return out, h.parseResponse(resp, &out)
}

func (h *HTTPClient) Stats(ctx context.Context) (schedule.Stats, error) {
	var out schedule.Stats
	resp, err := h.doRequest(ctx, http.MethodGet, "/schedules/stats", nil)
	if err != nil {
		return out, err
	}

	return out, h.parseResponse(resp, &out)
}

func (h *HTTPClient) Register(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/register", credentials{Login: login, Password: password})
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// Login возвращает токен сессии и начинает использовать его в запросах.
func (h *HTTPClient) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/login", credentials{Login: login, Password: password})
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}

	h.SetToken(out.Token)
	return out.Token, nil
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func listValues(q schedule.ListQuery) string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("doctorName", q.DoctorName)
	set("patientName", q.PatientName)
	set("department", q.Department)
	set("dateTime", q.DateTime)
	set("sortBy", q.SortBy)
	set("sortOrder", q.SortOrder)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return resp, nil
}

// errorModel тело ошибки, которое отдает huma.
type errorModel struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func (h *HTTPClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	h.log.Debug("response received", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func decodeError(status int, body []byte) error {
	var em errorModel
	_ = json.Unmarshal(body, &em)

	detail := em.Detail
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		verr := &schedule.ValidationError{}
		for _, e := range em.Errors {
			field := e.Location
			if i := strings.IndexByte(field, '.'); i >= 0 {
				field = field[i+1:]
			}
			verr.Fields = append(verr.Fields, schedule.FieldError{Field: field, Message: e.Message})
		}
		if len(verr.Fields) == 0 {
			verr.Fields = []schedule.FieldError{{Field: "request", Message: detail}}
		}
		return verr
	case status == http.StatusNotFound:
		return schedule.ErrNotFound
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrServer, status, detail)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, detail)
	}
}
