package client

import (
	"sync"

	"hospitalsched/internal/app/client/queue"
	"hospitalsched/internal/domain/schedule"
)

// Cache локальная копия записей. Оптимистичные изменения кладутся сюда
// сразу, события сервера перезаписывают их без слияния.
type Cache struct {
	mu    sync.RWMutex
	items map[string]schedule.Schedule
	order []string
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]schedule.Schedule)}
}

func (c *Cache) Put(s schedule.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.items[s.ID] = s
}

func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache) Get(id string) (schedule.Schedule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.items[id]
	return s, ok
}

// List записи в порядке первого появления.
func (c *Cache) List() []schedule.Schedule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]schedule.Schedule, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Rename переносит запись с временного id на серверный, сохраняя позицию.
// Если серверная запись уже пришла событием, временная просто удаляется.
func (c *Cache) Rename(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.items[from]
	if !ok {
		return
	}
	delete(c.items, from)

	if _, exists := c.items[to]; exists {
		for i, v := range c.order {
			if v == from {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return
	}

	s.ID = to
	c.items[to] = s
	for i, v := range c.order {
		if v == from {
			c.order[i] = to
			break
		}
	}
}

// Apply применяет событие сервера.
func (c *Cache) Apply(ev schedule.Event) {
	switch ev.Kind {
	case schedule.EventCreated, schedule.EventUpdated:
		if ev.Schedule != nil {
			c.Put(*ev.Schedule)
		}
	case schedule.EventDeleted:
		c.Remove(ev.ID)
	}
}

// Restore накладывает ожидающие операции очереди, чтобы оптимистичные
// записи были видны и после перезапуска. UPDATE для записи, которой нет
// в кэше, пропускается: полной записи взять неоткуда.
func (c *Cache) Restore(ops []queue.PendingOperation) {
	for _, op := range ops {
		switch op.Type {
		case queue.OpCreate:
			req := op.Data.AsCreate()
			dt, err := req.Validate()
			if err != nil {
				continue
			}
			c.Put(schedule.Schedule{
				ID:          op.Data.RecordID,
				DoctorName:  req.DoctorName,
				PatientName: req.PatientName,
				Department:  req.Department,
				DateTime:    dt,
				Attachment:  req.Attachment,
			})
		case queue.OpUpdate:
			rec, ok := c.Get(op.Data.RecordID)
			if !ok {
				continue
			}
			dt, err := op.Data.UpdateRequest.Validate()
			if err != nil {
				continue
			}
			c.Put(rec.Apply(op.Data.UpdateRequest, dt))
		case queue.OpDelete:
			c.Remove(op.Data.RecordID)
		}
	}
}
