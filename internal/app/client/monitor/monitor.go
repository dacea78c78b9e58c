package monitor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 5 * time.Second
)

// HealthChecker одна проверка живости сервера.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// State локальная сеть и сервер. Только оба true дают прямые вызовы.
type State struct {
	Online   bool `json:"online"`
	ServerUp bool `json:"serverUp"`
}

func (s State) Connected() bool {
	return s.Online && s.ServerUp
}

// Monitor следит за доступностью. Переход в online&up из любого другого
// состояния вызывает OnConnected ровно один раз.
type Monitor struct {
	mu          sync.Mutex
	state       State
	checker     HealthChecker
	interval    time.Duration
	timeout     time.Duration
	onConnected func()
	log         *slog.Logger
}

type Option func(*Monitor)

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithOnline начальное состояние сети, по умолчанию true.
func WithOnline(online bool) Option {
	return func(m *Monitor) {
		m.state.Online = online
	}
}

func WithOnConnected(fn func()) Option {
	return func(m *Monitor) {
		m.onConnected = fn
	}
}

func New(checker HealthChecker, log *slog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		state:    State{Online: true, ServerUp: true},
		checker:  checker,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
		log:      log.With("component", "connectivity_monitor"),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *Monitor) Connected() bool {
	return m.State().Connected()
}

// SetOnline сигнал от источника сетевой доступности.
func (m *Monitor) SetOnline(online bool) {
	m.update(func(s *State) { s.Online = online })
}

// MarkServerDown фиксирует сетевую ошибку прямого вызова, не дожидаясь
// следующего опроса.
func (m *Monitor) MarkServerDown() {
	m.update(func(s *State) { s.ServerUp = false })
}

// Probe выполняет одну проверку с таймаутом. Любая ошибка, в том числе
// таймаут, означает, что сервер недоступен.
func (m *Monitor) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.checker.HealthCheck(probeCtx)
	cancel()

	// после остановки состояние не трогаем
	if ctx.Err() != nil {
		return false
	}

	if err != nil {
		m.log.Debug("health check failed", "error", err)
	}
	up := err == nil
	m.update(func(s *State) { s.ServerUp = up })

	return up
}

// Run опрашивает сервер сразу и далее каждые interval до отмены ctx.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

func (m *Monitor) update(fn func(*State)) {
	m.mu.Lock()
	prev := m.state
	fn(&m.state)
	next := m.state
	cb := m.onConnected
	m.mu.Unlock()

	if prev == next {
		return
	}

	m.log.Info("connectivity changed",
		slog.Bool("online", next.Online),
		slog.Bool("server_up", next.ServerUp),
	)

	if !prev.Connected() && next.Connected() && cb != nil {
		cb()
	}
}
