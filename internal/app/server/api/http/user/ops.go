package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/user/register",
		Summary:       "Регистрация сотрудника",
		Description:   "Создает учетную запись сотрудника, которому разрешено вести расписание приемов.",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/user/login",
		Summary:     "Вход сотрудника",
		Description: "Выдает bearer-токен для /schedules и канала /ws.",
		Tags:        []string{"users"},
		Middlewares: h.middleware,
	}
}
