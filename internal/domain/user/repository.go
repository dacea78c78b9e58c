package user

import (
	"context"
)

// Repository учетные записи сотрудников. Create возвращает ErrAlreadyExists
// для занятого логина.
type Repository interface {
	Create(ctx context.Context, login, passwordHash string) (User, error)
	FindByLogin(ctx context.Context, login string) (User, error)
}
