package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Create(ctx context.Context, req CreateRequest) (Schedule, error)
	List(ctx context.Context, q ListQuery) (Page, error)
	Get(ctx context.Context, id string) (Schedule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Schedule, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}

// Service бизнес-логика записей. Каждое успешное изменение уходит
// подписчикам через publisher.
type Service struct {
	repo      Repository
	publisher Publisher
	newID     func() string
	log       *slog.Logger
}

func NewService(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &Service{
		repo:      repo,
		publisher: publisher,
		newID:     uuid.NewString,
		log:       log.With("component", "schedule_service"),
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Schedule, error) {
	dt, err := req.Validate()
	if err != nil {
		s.log.Debug("create validation failed", "error", err)
		return Schedule{}, err
	}

	rec := Schedule{
		ID:          s.newID(),
		DoctorName:  req.DoctorName,
		PatientName: req.PatientName,
		Department:  req.Department,
		DateTime:    dt,
		Attachment:  req.Attachment,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Schedule{}, fmt.Errorf("create schedule: %w", err)
	}

	s.publisher.Publish(CreatedEvent(rec))
	s.log.Debug("schedule created", "id", rec.ID)

	return rec, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	q, err := q.Normalize()
	if err != nil {
		return Page{}, err
	}

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("list schedules: %w", err)
	}

	return page, nil
}

func (s *Service) Get(ctx context.Context, id string) (Schedule, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Schedule{}, ErrNotFound
		}
		return Schedule{}, fmt.Errorf("get schedule: %w", err)
	}

	return rec, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Schedule, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	dt, err := req.Validate()
	if err != nil {
		return Schedule{}, err
	}

	updated := current.Apply(req, dt)
	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Schedule{}, ErrNotFound
		}
		return Schedule{}, fmt.Errorf("update schedule: %w", err)
	}

	s.publisher.Publish(UpdatedEvent(updated))

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete schedule: %w", err)
	}

	s.publisher.Publish(DeletedEvent(id))
	s.log.Debug("schedule deleted", "id", id)

	return nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("schedule stats: %w", err)
	}

	return Summarize(all), nil
}
