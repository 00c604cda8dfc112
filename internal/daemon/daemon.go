// Package daemon runs the long-lived parts of the service: the registry
// holder, the data watcher, browsing sessions and their eviction sweep.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/config"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/journal"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/notify"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/retry"
)

// Status represents the current state of the daemon
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Options supplies collaborators. Nil fields are built from the config.
type Options struct {
	Recorder  metrics.Recorder
	Publisher notify.Publisher
	Journal   journal.Store
	Loader    LoaderFunc
}

// Daemon represents the main daemon service
type Daemon struct {
	config    *config.Config
	status    atomic.Value // Status
	startTime time.Time
	mu        sync.Mutex

	holder    *Holder
	sessions  *SessionManager
	scheduler *Scheduler
	watcher   *DataWatcher
	journal   journal.Store
	publisher notify.Publisher
}

// New wires a daemon from cfg.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, derrors.New(derrors.CategoryConfig, derrors.SeverityFatal, "configuration is required")
	}
	rec := metrics.OrNoop(opts.Recorder)

	store := opts.Journal
	if store == nil {
		store = journal.NoopStore{}
		if cfg.Journal.Enabled {
			s, err := journal.NewSQLiteStore(cfg.Journal.Path)
			if err != nil {
				return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to open journal").
					WithContext("path", cfg.Journal.Path)
			}
			store = s
		}
	}

	pub := opts.Publisher
	if pub == nil {
		pub = notify.Noop{}
		if cfg.Notify.NATSURL != "" {
			p, err := notify.NewNATSPublisher(cfg.Notify.NATSURL, cfg.Notify.Subject)
			if err != nil {
				_ = store.Close()
				return nil, derrors.Wrap(err, derrors.CategoryNetwork, derrors.SeverityFatal, "failed to connect notifier")
			}
			pub = p
		}
	}

	load := opts.Loader
	if load == nil {
		paths := cfg.Data.SourcePaths()
		load = func(ctx context.Context) (*registry.Registry, error) {
			return registry.LoadFiles(ctx, paths)
		}
	}

	sched, err := NewScheduler()
	if err != nil {
		_ = store.Close()
		_ = pub.Close()
		return nil, err
	}

	d := &Daemon{
		config:    cfg,
		holder:    NewHolder(load, WithRecorder(rec), WithPublisher(pub), WithSnapshot(cfg.Snapshot())),
		scheduler: sched,
		journal:   store,
		publisher: pub,
		sessions: NewSessionManager(SessionOptions{
			Max:         cfg.Sessions.Max,
			IdleTimeout: cfg.Sessions.IdleTimeoutDuration(),
			Journal:     store,
			Recorder:    rec,
		}),
	}
	d.status.Store(StatusStopped)
	return d, nil
}

// Holder returns the registry holder.
func (d *Daemon) Holder() *Holder { return d.holder }

// Sessions returns the session manager.
func (d *Daemon) Sessions() *SessionManager { return d.sessions }

// GetStatus returns the lifecycle state.
func (d *Daemon) GetStatus() Status {
	if s, ok := d.status.Load().(Status); ok {
		return s
	}
	return StatusStopped
}

// Uptime reports how long the daemon has been running.
func (d *Daemon) Uptime() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.startTime.IsZero() {
		return 0
	}
	return time.Since(d.startTime)
}

// Start loads the registry and starts background work. A registry that
// fails to load on start is fatal.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.GetStatus() != StatusStopped {
		return fmt.Errorf("daemon is not in stopped state: %s", d.GetStatus())
	}
	d.status.Store(StatusStarting)
	d.startTime = time.Now()

	if err := d.holder.Reload(ctx); err != nil {
		d.status.Store(StatusError)
		return err
	}

	if _, err := d.scheduler.ScheduleEvery("session-sweep", d.config.Sessions.SweepIntervalDuration(), func(ctx context.Context) {
		d.sessions.Sweep(ctx)
	}); err != nil {
		d.status.Store(StatusError)
		return err
	}
	d.scheduler.Start(ctx)

	if d.config.Data.Watch {
		w, err := NewDataWatcher(d.config.Data.SourcePaths().Files(), d.holder, d.config.Data.DebounceDuration(),
			WithRetryPolicy(retry.ForReload(d.config.Data)))
		if err == nil {
			err = w.Start(ctx)
		}
		if err != nil {
			slog.Error("Failed to start data watcher", logfields.Error(err))
		} else {
			d.watcher = w
		}
	}

	d.status.Store(StatusRunning)
	slog.Info("Craftbook daemon started",
		logfields.Count(d.holder.Current().Len()),
		slog.Bool("watch", d.watcher != nil),
		slog.Int("max_sessions", d.config.Sessions.Max))
	return nil
}

// Stop shuts background work down in reverse start order.
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.GetStatus() {
	case StatusStopped, StatusStopping:
		return nil
	}
	d.status.Store(StatusStopping)
	slog.Info("Stopping Craftbook daemon")

	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			slog.Error("Failed to stop data watcher", logfields.Error(err))
		}
		d.watcher = nil
	}
	if err := d.scheduler.Stop(ctx); err != nil {
		slog.Error("Failed to stop scheduler", logfields.Error(err))
	}
	if err := d.publisher.Close(); err != nil {
		slog.Error("Failed to close notifier", logfields.Error(err))
	}
	if err := d.journal.Close(); err != nil {
		slog.Error("Failed to close journal", logfields.Error(err))
	}

	d.status.Store(StatusStopped)
	slog.Info("Craftbook daemon stopped", slog.Duration("uptime", time.Since(d.startTime)))
	return nil
}
