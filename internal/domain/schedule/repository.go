package schedule

import "context"

// Repository хранилище записей. Реализации возвращают ErrNotFound,
// если записи с указанным id нет.
type Repository interface {
	Create(ctx context.Context, s Schedule) error
	FindByID(ctx context.Context, id string) (Schedule, error)
	// List получает уже нормализованный запрос.
	List(ctx context.Context, q ListQuery) (Page, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]Schedule, error)
}
