package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/app/client/queue"
	"hospitalsched/internal/domain/schedule"
)

// TempIDPrefix префикс id записей, созданных без связи с сервером.
const TempIDPrefix = "pending-"

var ErrSyncInProgress = errors.New("sync already in progress")

// RecordAPI сетевые мутации, которыми воспроизводится очередь.
type RecordAPI interface {
	Create(ctx context.Context, req schedule.CreateRequest) (schedule.Schedule, error)
	Update(ctx context.Context, id string, req schedule.UpdateRequest) (schedule.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// Policy поведение при неудачной операции.
type Policy string

const (
	// PolicyAppend неудачная операция уходит в конец очереди, обработка
	// продолжается. Порядок при следующем проходе может измениться.
	PolicyAppend Policy = "append"
	// PolicyHalt обработка останавливается на первой ошибке, неудачная и
	// все оставшиеся операции возвращаются в очередь в исходном порядке.
	PolicyHalt Policy = "halt"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(s)); p {
	case PolicyAppend, PolicyHalt:
		return p, nil
	case "":
		return PolicyAppend, nil
	default:
		return "", fmt.Errorf("unknown sync policy %q", s)
	}
}

// SyncResult результат одного прохода.
type SyncResult struct {
	Applied   int               `json:"applied"`
	Failed    int               `json:"failed"`
	Requeued  int               `json:"requeued"`
	Remapped  map[string]string `json:"remapped,omitempty"`
	Errors    []SyncError       `json:"errors,omitempty"`
	StartTime time.Time         `json:"start_time"`
	Duration  time.Duration     `json:"duration"`
	// Unsaved операции, которые не удалось вернуть в очередь из-за
	// ошибки локального хранилища. Reconciler держит их в памяти и
	// повторяет первыми в следующем проходе.
	Unsaved []queue.PendingOperation `json:"unsaved,omitempty"`
}

// SyncError ошибка воспроизведения одной операции.
type SyncError struct {
	OpID     string       `json:"op_id"`
	Type     queue.OpType `json:"type"`
	RecordID string       `json:"record_id"`
	Error    string       `json:"error"`
}

// SyncStats накопленная статистика.
type SyncStats struct {
	Runs         int        `json:"runs"`
	TotalApplied int        `json:"total_applied"`
	TotalFailed  int        `json:"total_failed"`
	LastRun      time.Time  `json:"last_run"`
	LastResult   SyncResult `json:"last_result"`
}

// Reconciler воспроизводит очередь на сервере.
type Reconciler struct {
	queue   *queue.Queue
	api     RecordAPI
	policy  Policy
	running atomic.Bool
	onRemap func(from, to string)

	mu    sync.Mutex
	stats SyncStats
	held  []queue.PendingOperation

	log *slog.Logger
}

func NewReconciler(q *queue.Queue, api RecordAPI, policy Policy, log *slog.Logger) *Reconciler {
	if policy == "" {
		policy = PolicyAppend
	}

	return &Reconciler{
		queue:  q,
		api:    api,
		policy: policy,
		log:    log.With("component", "sync_reconciler", "policy", string(policy)),
	}
}

// OnRemap вызывается, когда временный id получил серверный.
func (r *Reconciler) OnRemap(fn func(from, to string)) {
	r.onRemap = fn
}

func (r *Reconciler) Stats() SyncStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stats
}

// Drain забирает снимок очереди и воспроизводит его по порядку.
// Одновременно выполняется только один проход.
func (r *Reconciler) Drain(ctx context.Context) (res SyncResult, err error) {
	if !r.running.CompareAndSwap(false, true) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer r.running.Store(false)

	res.StartTime = time.Now()
	defer func() {
		res.Duration = time.Since(res.StartTime)
		r.record(res)
	}()

	taken, err := r.queue.Take(ctx)
	if err != nil {
		return res, fmt.Errorf("take queue: %w", err)
	}

	// несохраненные с прошлого прохода старше всего, что лежит в очереди
	ops := append(r.takeHeld(), taken...)
	if len(ops) == 0 {
		return res, nil
	}

	r.log.Info("sync started", "pending", len(ops))

	remap := make(map[string]string)
	var saveErr error

	for i := range ops {
		op := ops[i]
		if to, ok := remap[op.Data.RecordID]; ok {
			op.Data.RecordID = to
		}

		rec, err := r.apply(ctx, op)
		if err == nil {
			res.Applied++
			if op.Type == queue.OpCreate && strings.HasPrefix(op.Data.RecordID, TempIDPrefix) {
				remap[op.Data.RecordID] = rec.ID
				r.remapLive(ctx, op.Data.RecordID, rec.ID)
			}
			continue
		}

		res.Failed++
		res.Errors = append(res.Errors, SyncError{
			OpID:     op.ID,
			Type:     op.Type,
			RecordID: op.Data.RecordID,
			Error:    err.Error(),
		})
		r.log.Warn("replay failed", "op_id", op.ID, "type", op.Type, "record_id", op.Data.RecordID, "error", err)

		requeue := []queue.PendingOperation{op}
		if r.policy == PolicyHalt {
			for _, rest := range ops[i+1:] {
				if to, ok := remap[rest.Data.RecordID]; ok {
					rest.Data.RecordID = to
				}
				requeue = append(requeue, rest)
			}
		}

		if err := r.queue.Append(ctx, requeue...); err != nil {
			// проход продолжается, операции остаются в памяти
			r.log.Error("failed to requeue operations", "ops", len(requeue), "error", err)
			res.Unsaved = append(res.Unsaved, requeue...)
			if saveErr == nil {
				saveErr = err
			}
		} else {
			res.Requeued += len(requeue)
		}

		if r.policy == PolicyHalt {
			break
		}
	}

	if len(remap) > 0 {
		res.Remapped = remap
	}

	r.setHeld(res.Unsaved)

	r.log.Info("sync finished", "applied", res.Applied, "failed", res.Failed,
		"requeued", res.Requeued, "unsaved", len(res.Unsaved))

	if saveErr != nil {
		return res, fmt.Errorf("requeue: %w", saveErr)
	}

	return res, nil
}

// Unsaved операции, которые ждут следующего прохода только в памяти.
func (r *Reconciler) Unsaved() []queue.PendingOperation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]queue.PendingOperation, len(r.held))
	copy(out, r.held)
	return out
}

// Flush пытается вернуть несохраненные операции в начало очереди на диске.
func (r *Reconciler) Flush(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer r.running.Store(false)

	held := r.takeHeld()
	if len(held) == 0 {
		return nil
	}

	if err := r.queue.Prepend(ctx, held...); err != nil {
		r.setHeld(held)
		return fmt.Errorf("flush unsaved: %w", err)
	}

	return nil
}

func (r *Reconciler) takeHeld() []queue.PendingOperation {
	r.mu.Lock()
	defer r.mu.Unlock()

	held := r.held
	r.held = nil
	return held
}

func (r *Reconciler) setHeld(ops []queue.PendingOperation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.held = ops
}

func (r *Reconciler) apply(ctx context.Context, op queue.PendingOperation) (schedule.Schedule, error) {
	switch op.Type {
	case queue.OpCreate:
		return r.api.Create(ctx, op.Data.AsCreate())
	case queue.OpUpdate:
		return r.api.Update(ctx, op.Data.RecordID, op.Data.UpdateRequest)
	case queue.OpDelete:
		return schedule.Schedule{}, r.api.Delete(ctx, op.Data.RecordID)
	default:
		return schedule.Schedule{}, fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// remapLive переписывает временный id в операциях, поставленных в очередь
// уже во время прохода.
func (r *Reconciler) remapLive(ctx context.Context, from, to string) {
	if n, err := r.queue.RewriteID(ctx, from, to); err != nil {
		r.log.Error("failed to rewrite temporary id", "from", from, "to", to, "error", err)
	} else if n > 0 {
		r.log.Debug("temporary id rewritten in queue", "from", from, "to", to, "ops", n)
	}

	if r.onRemap != nil {
		r.onRemap(from, to)
	}
}

func (r *Reconciler) record(res SyncResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Runs++
	r.stats.TotalApplied += res.Applied
	r.stats.TotalFailed += res.Failed
	r.stats.LastRun = res.StartTime
	r.stats.LastResult = res
}
