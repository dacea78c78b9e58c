package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

func receive(t *testing.T, sub *Subscription) schedule.Event {
	t.Helper()

	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return schedule.Event{}
	}
}

func assertEmpty(t *testing.T, sub *Subscription) {
	t.Helper()

	select {
	case ev, ok := <-sub.Events():
		if ok {
			t.Fatalf("unexpected event %v", ev.Kind)
		}
	default:
	}
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(4, slog.Default())

	assert.NotPanics(t, func() {
		hub.Publish(schedule.DeletedEvent("x"))
	})
	assert.Equal(t, 0, hub.Subscribers())
}

func TestHub_FanOut(t *testing.T) {
	hub := NewHub(4, slog.Default())
	first := hub.Subscribe()
	second := hub.Subscribe()
	defer first.Close()
	defer second.Close()

	hub.Publish(schedule.CreatedEvent(schedule.Schedule{ID: "1"}))

	for _, sub := range []*Subscription{first, second} {
		ev := receive(t, sub)
		assert.Equal(t, schedule.EventCreated, ev.Kind)
		assert.Equal(t, "1", ev.Schedule.ID)
	}
}

func TestHub_NoReplayForLateSubscriber(t *testing.T) {
	hub := NewHub(4, slog.Default())
	early := hub.Subscribe()
	defer early.Close()

	hub.Publish(schedule.DeletedEvent("old"))

	late := hub.Subscribe()
	defer late.Close()

	assertEmpty(t, late)

	hub.Publish(schedule.DeletedEvent("new"))
	assert.Equal(t, "new", receive(t, late).ID)

	assert.Equal(t, "old", receive(t, early).ID)
	assert.Equal(t, "new", receive(t, early).ID)
}

func TestHub_SlowSubscriberIsolated(t *testing.T) {
	hub := NewHub(1, slog.Default())
	slow := hub.Subscribe()
	fast := hub.Subscribe()
	defer slow.Close()
	defer fast.Close()

	hub.Publish(schedule.DeletedEvent("1"))
	assert.Equal(t, "1", receive(t, fast).ID)

	// slow still holds "1", so "2" overflows only its buffer
	hub.Publish(schedule.DeletedEvent("2"))
	assert.Equal(t, "2", receive(t, fast).ID)

	assert.Equal(t, "1", receive(t, slow).ID)
	assertEmpty(t, slow)
	assert.Equal(t, uint64(1), hub.Dropped())
}

func TestSubscription_Close(t *testing.T) {
	hub := NewHub(4, slog.Default())
	sub := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, hub.Subscribers())
	_, ok := <-sub.Events()
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		hub.Publish(schedule.DeletedEvent("after"))
	})
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(4, slog.Default())
	sub := hub.Subscribe()

	hub.Close()

	_, ok := <-sub.Events()
	assert.False(t, ok)
	assert.NotPanics(t, sub.Close)

	late := hub.Subscribe()
	_, ok = <-late.Events()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers())
}
