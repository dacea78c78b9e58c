package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"hospitalsched/internal/app/client/config"
	"hospitalsched/internal/app/client/crypto"
	"hospitalsched/internal/app/client/monitor"
	"hospitalsched/internal/app/client/netwatch"
	"hospitalsched/internal/app/client/queue"
	"hospitalsched/internal/domain/schedule"
)

var ErrNoAuthClient = errors.New("authentication requires an HTTP client")

// App клиентский фасад. При наличии связи вызовы идут напрямую на сервер,
// при сетевой ошибке мутация ставится в очередь, а кэш обновляется
// оптимистично.
type App struct {
	config  *config.Config
	log     *slog.Logger
	remote  Remote
	http    *HTTPClient
	queue   *queue.Queue
	monitor *monitor.Monitor
	sync    *Reconciler
	cache   *Cache
	closer  io.Closer
	now     func() time.Time

	mu         sync.Mutex
	runCtx     context.Context
	lastTempMs int64
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	var (
		store  queue.Store
		closer io.Closer
	)
	if cfg.Ephemeral {
		store = queue.NewMemoryStore()
	} else {
		sqlite, err := queue.NewSQLiteStore(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации локального хранилища: %w", err)
		}
		store, closer = sqlite, sqlite

		if cfg.QueuePassphrase != "" {
			sealed, err := crypto.NewSealedStore(ctx, sqlite, cfg.QueuePassphrase)
			if err != nil {
				_ = sqlite.Close()
				return nil, fmt.Errorf("ошибка инициализации шифрования очереди: %w", err)
			}
			store = sealed
		}
	}

	httpCl := NewHTTPClient(cfg, log)

	app, err := newApp(ctx, cfg, log, httpCl, store)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	app.http = httpCl
	app.closer = closer

	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, remote Remote, store queue.Store) (*App, error) {
	policy, err := ParsePolicy(cfg.SyncPolicy)
	if err != nil {
		return nil, err
	}

	q, err := queue.Open(ctx, store, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки очереди: %w", err)
	}

	app := &App{
		config: cfg,
		log:    log.With("component", "client_app"),
		remote: remote,
		queue:  q,
		cache:  NewCache(),
		now:    time.Now,
		runCtx: context.Background(),
	}

	app.cache.Restore(q.List())

	app.sync = NewReconciler(q, remote, policy, log)
	app.sync.OnRemap(app.cache.Rename)

	app.monitor = monitor.New(remote, log,
		monitor.WithInterval(cfg.HealthInterval),
		monitor.WithTimeout(cfg.HealthTimeout),
		monitor.WithOnConnected(app.onConnected),
	)

	return app, nil
}

// Connect одна проверка сети и сервера, для коротких команд.
func (a *App) Connect(ctx context.Context) monitor.State {
	a.monitor.SetOnline(netwatch.Online())
	a.monitor.Probe(ctx)
	return a.monitor.State()
}

// Run запускает мониторинг, подписку на события и периодическую
// синхронизацию. handle получает каждое событие после обновления кэша.
func (a *App) Run(ctx context.Context, handle func(schedule.Event)) {
	a.mu.Lock()
	a.runCtx = ctx
	a.mu.Unlock()

	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	spawn(func() { netwatch.New(0, a.log).Run(ctx, a.monitor.SetOnline) })
	spawn(func() { a.monitor.Run(ctx) })

	sub := NewSubscriber(a.config.WebSocketURL(), a.config.LoadToken, a.log)
	spawn(func() {
		sub.Run(ctx, func(ev schedule.Event) {
			a.cache.Apply(ev)
			if handle != nil {
				handle(ev)
			}
		})
	})

	if a.config.SyncInterval > 0 {
		spawn(func() { a.syncLoop(ctx, a.config.SyncInterval) })
	}

	wg.Wait()
	a.wg.Wait()
}

func (a *App) syncLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.monitor.Connected() && len(a.Pending()) > 0 {
				a.drain(ctx)
			}
		}
	}
}

func (a *App) onConnected() {
	a.mu.Lock()
	ctx := a.runCtx
	a.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.drain(ctx)
	}()
}

func (a *App) drain(ctx context.Context) {
	res, err := a.sync.Drain(ctx)
	switch {
	case errors.Is(err, ErrSyncInProgress):
		a.log.Debug("sync skipped, already running")
	case err != nil:
		a.log.Error("sync failed", "error", err, "unsaved", len(res.Unsaved))
	case res.Applied+res.Failed > 0:
		a.log.Info("sync completed", "applied", res.Applied, "failed", res.Failed)
	}
}

// Add создает запись. Второе значение true, если запись поставлена в
// очередь под временным id.
func (a *App) Add(ctx context.Context, req schedule.CreateRequest) (schedule.Schedule, bool, error) {
	dt, err := req.Validate()
	if err != nil {
		return schedule.Schedule{}, false, err
	}

	if a.monitor.Connected() {
		rec, err := a.remote.Create(ctx, req)
		if err == nil {
			a.cache.Put(rec)
			return rec, false, nil
		}
		if !a.fallback(err) {
			return schedule.Schedule{}, false, err
		}
	}

	rec := schedule.Schedule{
		ID:          a.tempID(),
		DoctorName:  req.DoctorName,
		PatientName: req.PatientName,
		Department:  req.Department,
		DateTime:    dt,
		Attachment:  req.Attachment,
	}
	if err := a.queue.Enqueue(ctx, queue.CreateOp(rec.ID, req)); err != nil {
		return schedule.Schedule{}, false, err
	}
	a.cache.Put(rec)

	return rec, true, nil
}

func (a *App) Update(ctx context.Context, id string, req schedule.UpdateRequest) (schedule.Schedule, bool, error) {
	dt, err := req.Validate()
	if err != nil {
		return schedule.Schedule{}, false, err
	}

	if a.monitor.Connected() {
		rec, err := a.remote.Update(ctx, id, req)
		if err == nil {
			a.cache.Put(rec)
			return rec, false, nil
		}
		if !a.fallback(err) {
			return schedule.Schedule{}, false, err
		}
	}

	if err := a.queue.Enqueue(ctx, queue.UpdateOp(id, req)); err != nil {
		return schedule.Schedule{}, false, err
	}

	rec, ok := a.cache.Get(id)
	if !ok {
		return schedule.Schedule{ID: id}.Apply(req, dt), true, nil
	}
	rec = rec.Apply(req, dt)
	a.cache.Put(rec)

	return rec, true, nil
}

func (a *App) Delete(ctx context.Context, id string) (bool, error) {
	if a.monitor.Connected() {
		err := a.remote.Delete(ctx, id)
		if err == nil {
			a.cache.Remove(id)
			return false, nil
		}
		if !a.fallback(err) {
			return false, err
		}
	}

	if err := a.queue.Enqueue(ctx, queue.DeleteOp(id)); err != nil {
		return false, err
	}
	a.cache.Remove(id)

	return true, nil
}

// Get при отсутствии связи отвечает из кэша.
func (a *App) Get(ctx context.Context, id string) (schedule.Schedule, error) {
	if a.monitor.Connected() {
		rec, err := a.remote.Get(ctx, id)
		if err == nil {
			a.cache.Put(rec)
			return rec, nil
		}
		if !a.fallback(err) {
			return schedule.Schedule{}, err
		}
	}

	rec, ok := a.cache.Get(id)
	if !ok {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	return rec, nil
}

// List второе значение true, если ответ собран из кэша.
func (a *App) List(ctx context.Context, q schedule.ListQuery) (schedule.Page, bool, error) {
	if a.monitor.Connected() {
		page, err := a.remote.List(ctx, q)
		if err == nil {
			for _, rec := range page.Data {
				a.cache.Put(rec)
			}
			return page, false, nil
		}
		if !a.fallback(err) {
			return schedule.Page{}, false, err
		}
	}

	nq, err := q.Normalize()
	if err != nil {
		return schedule.Page{}, true, err
	}
	return schedule.Apply(a.cache.List(), nq), true, nil
}

func (a *App) Stats(ctx context.Context) (schedule.Stats, bool, error) {
	if a.monitor.Connected() {
		st, err := a.remote.Stats(ctx)
		if err == nil {
			return st, false, nil
		}
		if !a.fallback(err) {
			return schedule.Stats{}, false, err
		}
	}

	return schedule.Summarize(a.cache.List()), true, nil
}

// Sync ручной запуск синхронизации.
func (a *App) Sync(ctx context.Context) (SyncResult, error) {
	return a.sync.Drain(ctx)
}

// Pending операции, ожидающие отправки, включая несохраненные на диск.
func (a *App) Pending() []queue.PendingOperation {
	return append(a.sync.Unsaved(), a.queue.List()...)
}

func (a *App) Status() Status {
	return Status{
		Connectivity: a.monitor.State(),
		Pending:      a.queue.Len() + len(a.sync.Unsaved()),
		Cached:       a.cache.Len(),
		Sync:         a.sync.Stats(),
	}
}

func (a *App) Register(ctx context.Context, login, password string) error {
	if a.http == nil {
		return ErrNoAuthClient
	}
	return a.http.Register(ctx, login, password)
}

// Login сохраняет токен для последующих запусков.
func (a *App) Login(ctx context.Context, login, password string) error {
	if a.http == nil {
		return ErrNoAuthClient
	}

	token, err := a.http.Login(ctx, login, password)
	if err != nil {
		return err
	}
	return a.config.SaveToken(token)
}

// Close дожидается фоновой синхронизации, возвращает несохраненные
// операции в очередь и закрывает хранилище.
func (a *App) Close() error {
	a.wg.Wait()

	var flushErr error
	if err := a.sync.Flush(context.Background()); err != nil {
		a.log.Error("unsaved operations lost", "ops", len(a.sync.Unsaved()), "error", err)
		flushErr = err
	}

	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			return err
		}
	}
	return flushErr
}

// fallback true, если ошибка сетевая и вызов надо обработать офлайн.
func (a *App) fallback(err error) bool {
	if !IsTransient(err) {
		return false
	}
	a.log.Warn("server unavailable, working offline", "error", err)
	a.monitor.MarkServerDown()
	return true
}

// tempID pending-<unixms>, монотонно растущий внутри процесса.
func (a *App) tempID() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	ms := a.now().UnixMilli()
	if ms <= a.lastTempMs {
		ms = a.lastTempMs + 1
	}
	a.lastTempMs = ms

	return fmt.Sprintf("%s%d", TempIDPrefix, ms)
}
