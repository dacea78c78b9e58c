package schedule

import "time"

type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Имена событий в канале реального времени.
const (
	WireCreated = "new_schedule"
	WireUpdated = "updated_schedule"
	WireDeleted = "deleted_schedule"
)

// Event изменение записи. Для удаления заполнен только ID.
type Event struct {
	Kind     EventKind
	Schedule *Schedule
	ID       string
	At       time.Time
}

// Publisher рассылает события подписчикам. Publish не должен блокироваться.
type Publisher interface {
	Publish(ev Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

func CreatedEvent(s Schedule) Event {
	return Event{Kind: EventCreated, Schedule: &s, ID: s.ID, At: time.Now()}
}

func UpdatedEvent(s Schedule) Event {
	return Event{Kind: EventUpdated, Schedule: &s, ID: s.ID, At: time.Now()}
}

func DeletedEvent(id string) Event {
	return Event{Kind: EventDeleted, ID: id, At: time.Now()}
}

func (k EventKind) WireName() string {
	switch k {
	case EventCreated:
		return WireCreated
	case EventUpdated:
		return WireUpdated
	case EventDeleted:
		return WireDeleted
	default:
		return string(k)
	}
}

// KindFromWire обратное к WireName.
func KindFromWire(name string) (EventKind, bool) {
	switch name {
	case WireCreated:
		return EventCreated, true
	case WireUpdated:
		return EventUpdated, true
	case WireDeleted:
		return EventDeleted, true
	default:
		return "", false
	}
}
