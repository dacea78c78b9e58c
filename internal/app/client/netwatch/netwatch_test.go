package netwatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestWatcher_ReportsOnlyChanges(t *testing.T) {
	var online atomic.Bool
	online.Store(true)

	w := New(5*time.Millisecond, slog.Default())
	w.probe = online.Load

	var (
		mu   sync.Mutex
		seen []bool
	)
	set := func(v bool) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	}
	snapshot := func() []bool {
		mu.Lock()
		defer mu.Unlock()
		return append([]bool(nil), seen...)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, set)

	require.Eventually(t, func() bool { return len(snapshot()) == 1 }, time.Second, time.Millisecond)

	// без изменений новых вызовов нет
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []bool{true}, snapshot())

	online.Store(false)
	require.Eventually(t, func() bool { return len(snapshot()) == 2 }, time.Second, time.Millisecond)

	online.Store(true)
	require.Eventually(t, func() bool { return len(snapshot()) == 3 }, time.Second, time.Millisecond)

	assert.Equal(t, []bool{true, false, true}, snapshot())
}

func TestNew_DefaultInterval(t *testing.T) {
	w := New(0, slog.Default())
	assert.Equal(t, DefaultInterval, w.interval)
}
