package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

// Key слот хранилища, в котором лежит сериализованная очередь.
const Key = "pendingOperations"

// Store key-value слот для очереди.
type Store interface {
	// Load возвращает nil без ошибки, если ключа еще нет.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Queue FIFO очередь отложенных операций. Каждая мутация сразу
// сохраняется целиком; если сохранение не удалось, очередь в памяти
// остается прежней.
type Queue struct {
	mu    sync.Mutex
	store Store
	ops   []PendingOperation
	log   *slog.Logger
}

// Open читает очередь из хранилища. Вызывается один раз при старте.
func Open(ctx context.Context, store Store, log *slog.Logger) (*Queue, error) {
	raw, err := store.Load(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}

	var ops []PendingOperation
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ops); err != nil {
			return nil, fmt.Errorf("decode queue: %w", err)
		}
	}

	q := &Queue{
		store: store,
		ops:   ops,
		log:   log.With("component", "offline_queue"),
	}
	q.log.Debug("queue loaded", "pending", len(ops))

	return q, nil
}

func (q *Queue) Enqueue(ctx context.Context, op PendingOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := append(q.copyLocked(), op)
	if err := q.commitLocked(ctx, "enqueue", next); err != nil {
		return err
	}

	q.log.Debug("operation queued", "op_id", op.ID, "type", op.Type, "record_id", op.Data.RecordID)
	return nil
}

// Take возвращает все операции и очищает очередь.
func (q *Queue) Take(ctx context.Context) ([]PendingOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := q.ops
	if err := q.commitLocked(ctx, "take", nil); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Append дописывает операции в конец очереди.
func (q *Queue) Append(ctx context.Context, ops ...PendingOperation) error {
	if len(ops) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	return q.commitLocked(ctx, "append", append(q.copyLocked(), ops...))
}

// Prepend ставит операции перед уже ожидающими.
func (q *Queue) Prepend(ctx context.Context, ops ...PendingOperation) error {
	if len(ops) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	next := make([]PendingOperation, 0, len(ops)+len(q.ops))
	next = append(next, ops...)
	next = append(next, q.ops...)

	return q.commitLocked(ctx, "prepend", next)
}

// RewriteID заменяет id записи from на to во всех ожидающих операциях и
// возвращает число затронутых.
func (q *Queue) RewriteID(ctx context.Context, from, to string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	next := q.copyLocked()
	n := 0
	for i := range next {
		if next[i].Data.RecordID == from {
			next[i].Data.RecordID = to
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}

	if err := q.commitLocked(ctx, "rewrite", next); err != nil {
		return 0, err
	}

	return n, nil
}

func (q *Queue) List() []PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.copyLocked()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.ops)
}

func (q *Queue) copyLocked() []PendingOperation {
	out := make([]PendingOperation, len(q.ops))
	copy(out, q.ops)
	return out
}

// commitLocked сначала сохраняет next, и только потом подменяет очередь в памяти.
func (q *Queue) commitLocked(ctx context.Context, op string, next []PendingOperation) error {
	if next == nil {
		next = []PendingOperation{}
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := q.store.Save(ctx, Key, raw); err != nil {
		q.log.Error("failed to persist queue", "op", op, "error", err)
		return &PersistenceError{Op: op, Err: err}
	}

	q.ops = next
	return nil
}
