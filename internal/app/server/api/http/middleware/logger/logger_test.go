package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type pingOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func setup(t *testing.T, buf *bytes.Buffer) humatest.TestAPI {
	_, api := humatest.New(t)
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(_ context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Status = "OK"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "boom",
		Method:      http.MethodGet,
		Path:        "/boom",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(_ context.Context, _ *struct{}) (*pingOutput, error) {
		return nil, huma.Error500InternalServerError("internal error")
	})

	return api
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	api := setup(t, &buf)

	resp := api.Get("/ping")
	require.Equal(t, http.StatusOK, resp.Code)

	id := resp.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestMiddleware_KeepsClientRequestID(t *testing.T) {
	var buf bytes.Buffer
	api := setup(t, &buf)

	resp := api.Get("/ping", RequestIDHeader+": req-42")

	assert.Equal(t, "req-42", resp.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestMiddleware_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	api := setup(t, &buf)

	resp := api.Get("/boom")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
