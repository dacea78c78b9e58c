package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope формат сообщения в канале реального времени.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type deletedData struct {
	ID string `json:"id"`
}

func EncodeEvent(ev Event) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch ev.Kind {
	case EventCreated, EventUpdated:
		if ev.Schedule == nil {
			return nil, fmt.Errorf("encode %s event: schedule is nil", ev.Kind)
		}
		data, err = json.Marshal(ev.Schedule)
	case EventDeleted:
		data, err = json.Marshal(deletedData{ID: ev.ID})
	default:
		return nil, fmt.Errorf("encode event: unknown kind %q", ev.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", ev.Kind, err)
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	return json.Marshal(Envelope{
		Type:      ev.Kind.WireName(),
		Data:      data,
		Timestamp: at.UnixMilli(),
	})
}

func DecodeEvent(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, fmt.Errorf("decode envelope: %w", err)
	}

	kind, ok := KindFromWire(env.Type)
	if !ok {
		return Event{}, fmt.Errorf("decode envelope: unknown type %q", env.Type)
	}

	ev := Event{Kind: kind, At: time.UnixMilli(env.Timestamp)}

	switch kind {
	case EventDeleted:
		var d deletedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		ev.ID = d.ID
	default:
		var s Schedule
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		ev.Schedule = &s
		ev.ID = s.ID
	}

	return ev, nil
}
