package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/app/server/api/http/middleware/auth"
	"hospitalsched/internal/domain/schedule"
	"hospitalsched/internal/infrastructure/broadcast"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

// TokenValidator проверяет bearer-токен; nil отключает проверку.
type TokenValidator func(ctx context.Context, token string) (int, error)

// Handler отдает события хаба по WebSocket. На каждое соединение своя
// подписка, которая снимается при разрыве.
type Handler struct {
	hub      *broadcast.Hub
	validate TokenValidator
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewHandler(hub *broadcast.Hub, validate TokenValidator, log *slog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		validate: validate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// клиенты - CLI и сервисы, Origin у них нет
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With("component", "ws_handler"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.validate != nil {
		token := r.URL.Query().Get("token")
		if t, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
			token = t
		}
		if _, err := h.validate(r.Context(), token); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", "error", err)
		return
	}

	sub := h.hub.Subscribe()
	h.log.Debug("client connected", "remote_addr", r.RemoteAddr)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub, done)

	h.log.Debug("client disconnected", "remote_addr", r.RemoteAddr)
}

// readPump нужен только для pong и обнаружения закрытия: входящие
// сообщения игнорируются.
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read error", "error", err)
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, sub *broadcast.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Close()
		_ = conn.Close()
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			msg, err := schedule.EncodeEvent(ev)
			if err != nil {
				h.log.Error("encode event", "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
