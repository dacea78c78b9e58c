package schedule

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

type Handler struct {
	service    schedule.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	secured    bool
}

func NewHandler(service schedule.Servicer, log *slog.Logger, mws huma.Middlewares, secured bool) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "schedule_handler"),
		middleware: mws,
		secured:    secured,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statsOp(), h.stats)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.patchOp(), h.update)
	huma.Register(api, h.putOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	page, err := h.service.List(ctx, input.query())
	if err != nil {
		return nil, h.httpError(err, "query")
	}

	return &listOutput{Body: page}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*scheduleOutput, error) {
	rec, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.httpError(err, "body")
	}

	return &scheduleOutput{Body: rec}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*scheduleOutput, error) {
	rec, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, h.httpError(err, "path")
	}

	return &scheduleOutput{Body: rec}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*scheduleOutput, error) {
	rec, err := h.service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, h.httpError(err, "body")
	}

	return &scheduleOutput{Body: rec}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.httpError(err, "path")
	}

	return nil, nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	st, err := h.service.Stats(ctx)
	if err != nil {
		return nil, h.httpError(err, "")
	}

	return &statsOutput{Body: st}, nil
}

// httpError переводит доменные ошибки в ответы: ValidationError в 400 с
// перечнем полей, ErrNotFound в 404, остальное в 500.
func (h *Handler) httpError(err error, location string) error {
	var verr *schedule.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			loc := f.Field
			if location != "" {
				loc = location + "." + f.Field
			}
			details = append(details, &huma.ErrorDetail{Location: loc, Message: f.Message})
		}
		return huma.Error400BadRequest("validation failed", details...)
	case errors.Is(err, schedule.ErrNotFound):
		return huma.Error404NotFound("schedule not found")
	default:
		h.log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
