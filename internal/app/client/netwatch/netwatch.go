package netwatch

import (
	"context"
	"net"
	"time"

	"golang.org/x/exp/slog"
)

const DefaultInterval = 5 * time.Second

// Watcher опрашивает сетевые интерфейсы хоста и сообщает об изменении
// локальной доступности сети.
type Watcher struct {
	interval time.Duration
	probe    func() bool
	log      *slog.Logger
}

func New(interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Watcher{
		interval: interval,
		probe:    Online,
		log:      log.With("component", "netwatch"),
	}
}

// Online true, если есть поднятый не-loopback интерфейс с адресом.
func Online() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}

	return false
}

// Run сразу передает текущее состояние в set, дальше только изменения.
func (w *Watcher) Run(ctx context.Context, set func(online bool)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := w.probe()
	set(last)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := w.probe()
			if now == last {
				continue
			}
			w.log.Debug("network reachability changed", "online", now)
			last = now
			set(now)
		}
	}
}
