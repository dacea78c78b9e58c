package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
	"hospitalsched/internal/infrastructure/broadcast"
)

func dial(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	return websocket.DefaultDialer.Dial(url, nil)
}

func waitSubscribers(t *testing.T, hub *broadcast.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Subscribers() == n }, time.Second, 10*time.Millisecond)
}

func TestHandler_RelaysEvents(t *testing.T) {
	hub := broadcast.NewHub(8, slog.Default())
	srv := httptest.NewServer(NewHandler(hub, nil, slog.Default()))
	defer srv.Close()

	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	waitSubscribers(t, hub, 1)

	hub.Publish(schedule.CreatedEvent(schedule.Schedule{ID: "a1", DoctorName: "Dr. Who"}))
	hub.Publish(schedule.DeletedEvent("a1"))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	ev, err := schedule.DecodeEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, schedule.EventCreated, ev.Kind)
	assert.Equal(t, "Dr. Who", ev.Schedule.DoctorName)

	_, raw, err = conn.ReadMessage()
	require.NoError(t, err)
	ev, err = schedule.DecodeEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, schedule.EventDeleted, ev.Kind)
	assert.Equal(t, "a1", ev.ID)
}

func TestHandler_UnsubscribesOnDisconnect(t *testing.T) {
	hub := broadcast.NewHub(8, slog.Default())
	srv := httptest.NewServer(NewHandler(hub, nil, slog.Default()))
	defer srv.Close()

	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	waitSubscribers(t, hub, 1)

	require.NoError(t, conn.Close())
	waitSubscribers(t, hub, 0)
}

func TestHandler_RequiresToken(t *testing.T) {
	hub := broadcast.NewHub(8, slog.Default())
	validate := func(_ context.Context, token string) (int, error) {
		if token == "good" {
			return 1, nil
		}
		return 0, errors.New("invalid session")
	}
	srv := httptest.NewServer(NewHandler(hub, validate, slog.Default()))
	defer srv.Close()

	_, resp, err := dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := dial(t, srv, "?token=good")
	require.NoError(t, err)
	defer conn.Close()
	waitSubscribers(t, hub, 1)
}
