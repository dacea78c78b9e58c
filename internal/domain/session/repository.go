package session

import (
	"context"
	"time"
)

// Repository хранит хэши токенов. Validate не возвращает истекшие сессии.
type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (int, error)
}
