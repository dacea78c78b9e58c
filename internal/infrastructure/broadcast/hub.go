package broadcast

import (
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

const DefaultBuffer = 256

// Hub раздает события всем текущим подписчикам. Истории нет: подписчик
// получает только события, опубликованные после Subscribe.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]*Subscription
	nextID  uint64
	buffer  int
	closed  bool
	dropped atomic.Uint64
	log     *slog.Logger
}

func NewHub(buffer int, log *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
		log:    log.With("component", "broadcast_hub"),
	}
}

// Publish не блокируется: если буфер подписчика заполнен, событие для него
// теряется, остальные подписчики его получают.
func (h *Hub) Publish(ev schedule.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			h.dropped.Add(1)
			h.log.Warn("subscriber buffer full, event dropped",
				"subscriber", id,
				"kind", ev.Kind,
				"schedule_id", ev.ID,
			)
		}
	}
}

func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id:  h.nextID,
		ch:  make(chan schedule.Event, h.buffer),
		hub: h,
	}

	if h.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}

	h.subs[sub.id] = sub
	h.log.Debug("subscriber added", "subscriber", sub.id, "total", len(h.subs))

	return sub
}

// Subscribers количество активных подписок.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Dropped сколько доставок было отброшено из-за переполнения буфера.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close отписывает всех. Последующие Subscribe сразу получают закрытый канал.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		h.log.Debug("subscriber removed", "subscriber", sub.id, "total", len(h.subs))
	}
	sub.once.Do(func() { close(sub.ch) })
}

type Subscription struct {
	id   uint64
	ch   chan schedule.Event
	hub  *Hub
	once sync.Once
}

// Events канал закрывается после Close.
func (s *Subscription) Events() <-chan schedule.Event {
	return s.ch
}

// Close прекращает доставку. Повторный вызов ничего не делает.
func (s *Subscription) Close() {
	s.hub.remove(s)
}
