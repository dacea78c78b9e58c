package client

import (
	"context"

	"hospitalsched/internal/app/client/monitor"
	"hospitalsched/internal/domain/schedule"
)

// Remote сервер расписания, как его видит клиент.
type Remote interface {
	RecordAPI
	monitor.HealthChecker
	Get(ctx context.Context, id string) (schedule.Schedule, error)
	List(ctx context.Context, q schedule.ListQuery) (schedule.Page, error)
	Stats(ctx context.Context) (schedule.Stats, error)
}

// Status сводка для команды status.
type Status struct {
	Connectivity monitor.State `json:"connectivity"`
	Pending      int           `json:"pending"`
	Cached       int           `json:"cached"`
	Sync         SyncStats     `json:"sync"`
}
