package user

import (
	"time"

	"hospitalsched/internal/domain/user"
)

type registerInput struct {
	Body user.Credentials
}

type registerOutput struct {
	Body StaffAccount
}

// StaffAccount учетная запись сотрудника без пароля.
type StaffAccount struct {
	ID        int       `json:"id" doc:"Идентификатор сотрудника"`
	Login     string    `json:"login" doc:"Логин"`
	CreatedAt time.Time `json:"createdAt" doc:"Время регистрации"`
}

type loginInput struct {
	Body user.Credentials
}

type loginOutput struct {
	Body SessionToken
}

// SessionToken передается в заголовке Authorization или параметром token
// при подключении к /ws.
type SessionToken struct {
	Token     string    `json:"token" doc:"Bearer-токен"`
	ExpiresAt time.Time `json:"expiresAt" doc:"Токен не принимается после этого момента"`
}
