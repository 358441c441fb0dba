package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"shuttle/internal/config"
	"shuttle/internal/logging"
	"shuttle/internal/services"
	"shuttle/internal/slot"
	"shuttle/internal/worker"
)

// Daemon coordinates the worker loops and enforces single-instance execution.
type Daemon struct {
	cfg       *config.Config
	store     slot.Store
	logger    *slog.Logger
	sessionID string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running  bool
	PID      int
	LockPath string
	DataDir  string
	Backend  string
	Services []string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store slot.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	sessionID := uuid.NewString()
	lockPath := filepath.Join(cfg.Paths.LogDir, "shuttled.lock")
	return &Daemon{
		cfg:       cfg,
		store:     store,
		logger:    logger.With(logging.String(logging.FieldSessionID, sessionID)),
		sessionID: sessionID,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// SessionID identifies this daemon run in logs.
func (d *Daemon) SessionID() string { return d.sessionID }

// Start acquires the daemon lock and launches one worker per enabled service.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	handlers := d.handlers()
	if len(handlers) == 0 {
		return errors.New("no services enabled")
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("prepare lock directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another shuttled instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	pollInterval := d.cfg.PollInterval()
	for _, handler := range handlers {
		runner := worker.NewRunner(d.store, handler, pollInterval, d.logger)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := runner.Run(runCtx); err != nil {
				d.logger.Error("worker failed to start",
					logging.Error(err),
					logging.String(logging.FieldEventType, "worker_start_failed"),
					logging.String(logging.FieldErrorHint, "check slot storage configuration"),
				)
			}
		}()
	}

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String(logging.FieldEventType, "daemon_start"),
		logging.Int("services", len(handlers)),
		logging.String("backend", d.cfg.Store.Backend),
	)
	return nil
}

// Stop terminates the workers and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release lock failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_unlock_failed"),
			logging.String(logging.FieldErrorHint, "remove the lock file manually if restarts fail"),
		)
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped", logging.String(logging.FieldEventType, "daemon_stop"))
}

// Close stops the daemon if it is still running.
func (d *Daemon) Close() {
	d.Stop()
}

// Status reports runtime information for CLI display.
func (d *Daemon) Status() Status {
	names := make([]string, 0, 4)
	for _, handler := range d.handlers() {
		names = append(names, handler.Name())
	}
	return Status{
		Running:  d.running.Load(),
		PID:      os.Getpid(),
		LockPath: d.lockPath,
		DataDir:  d.cfg.Paths.DataDir,
		Backend:  d.cfg.Store.Backend,
		Services: names,
	}
}

// handlers builds the enabled service set from configuration.
func (d *Daemon) handlers() []worker.Handler {
	var out []worker.Handler
	if d.cfg.Services.Selection {
		out = append(out, services.NewSelection())
	}
	if d.cfg.Services.CaseFormat {
		out = append(out, services.NewCaseFormat())
	}
	if d.cfg.Services.AggregateCount {
		out = append(out, services.NewAggregate())
	}
	if d.cfg.Services.WordFrequency {
		out = append(out, services.NewWordFrequency(d.cfg.WordFrequency.TopN, d.cfg.WordFrequency.Delimiter))
	}
	return out
}
