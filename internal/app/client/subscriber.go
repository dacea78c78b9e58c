package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

const (
	subscriberPongWait = 60 * time.Second
	reconnectMin       = time.Second
	reconnectMax       = 30 * time.Second
)

// Subscriber читает события сервера из /ws и переподключается при обрыве.
type Subscriber struct {
	url    string
	token  func() string
	dialer *websocket.Dialer
	log    *slog.Logger
}

func NewSubscriber(url string, token func() string, log *slog.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		token:  token,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:    log.With("component", "event_subscriber"),
	}
}

// Run держит подключение до отмены ctx. handle вызывается из горутины Run.
func (s *Subscriber) Run(ctx context.Context, handle func(schedule.Event)) {
	delay := reconnectMin

	for {
		connected, err := s.listen(ctx, handle)
		if ctx.Err() != nil {
			return
		}
		if connected {
			delay = reconnectMin
		}
		s.log.Debug("event stream interrupted", "error", err, "retry_in", delay)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		delay *= 2
		if delay > reconnectMax {
			delay = reconnectMax
		}
	}
}

func (s *Subscriber) listen(ctx context.Context, handle func(schedule.Event)) (bool, error) {
	header := http.Header{}
	if s.token != nil {
		if tok := s.token(); tok != "" {
			header.Set("Authorization", "Bearer "+tok)
		}
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, header)
	if err != nil {
		return false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	s.log.Info("event stream connected", "url", s.url)

	// закрываем соединение при отмене, чтобы разблокировать ReadMessage
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	_ = conn.SetReadDeadline(time.Now().Add(subscriberPongWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(subscriberPongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(10*time.Second))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return true, fmt.Errorf("read: %w", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(subscriberPongWait))

		ev, err := schedule.DecodeEvent(raw)
		if err != nil {
			s.log.Warn("skip malformed event", "error", err)
			continue
		}
		handle(ev)
	}
}
