package schedule

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) operation(id, method, path, summary string) huma.Operation {
	op := huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     summary,
		Tags:        []string{"schedules"},
		Middlewares: h.middleware,
	}
	if h.secured {
		op.Security = []map[string][]string{{"bearer": {}}}
	}

	return op
}

func (h *Handler) listOp() huma.Operation {
	return h.operation("schedules-list", http.MethodGet, "/schedules", "Список приемов с фильтрами и пагинацией")
}

func (h *Handler) createOp() huma.Operation {
	op := h.operation("schedules-create", http.MethodPost, "/schedules", "Создать прием")
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) findOp() huma.Operation {
	return h.operation("schedules-find", http.MethodGet, "/schedules/{id}", "Получить прием")
}

func (h *Handler) patchOp() huma.Operation {
	return h.operation("schedules-patch", http.MethodPatch, "/schedules/{id}", "Частично обновить прием")
}

func (h *Handler) putOp() huma.Operation {
	op := h.operation("schedules-put", http.MethodPut, "/schedules/{id}", "Обновить прием")
	op.Description = "Те же правила, что и у PATCH: меняются только переданные поля."
	return op
}

func (h *Handler) deleteOp() huma.Operation {
	op := h.operation("schedules-delete", http.MethodDelete, "/schedules/{id}", "Удалить прием")
	op.DefaultStatus = http.StatusNoContent
	return op
}

func (h *Handler) statsOp() huma.Operation {
	return h.operation("schedules-stats", http.MethodGet, "/schedules/stats", "Сводка: всего приемов, самый загруженный врач, популярное отделение")
}
