package memory

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

// ScheduleRepository хранит записи в памяти процесса в порядке вставки.
type ScheduleRepository struct {
	mu    sync.RWMutex
	items []schedule.Schedule
	log   *slog.Logger
}

func NewScheduleRepository(log *slog.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		log: log.With("component", "schedule_repository", "backend", "memory"),
	}
}

func (r *ScheduleRepository) Create(_ context.Context, s schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(s.ID) >= 0 {
		return fmt.Errorf("schedule %s already exists", s.ID)
	}

	r.items = append(r.items, s)

	return nil
}

func (r *ScheduleRepository) FindByID(_ context.Context, id string) (schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return schedule.Schedule{}, schedule.ErrNotFound
	}

	return r.items[i], nil
}

func (r *ScheduleRepository) List(_ context.Context, q schedule.ListQuery) (schedule.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return schedule.Apply(r.items, q), nil
}

func (r *ScheduleRepository) Update(_ context.Context, s schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(s.ID)
	if i < 0 {
		return schedule.ErrNotFound
	}

	r.items[i] = s

	return nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return schedule.ErrNotFound
	}

	r.items = append(r.items[:i], r.items[i+1:]...)

	return nil
}

func (r *ScheduleRepository) All(_ context.Context) ([]schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Schedule, len(r.items))
	copy(out, r.items)

	return out, nil
}

func (r *ScheduleRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func (r *ScheduleRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}

	return -1
}
