package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/retry"
)

// DataWatcher reloads the registry when one of its source documents changes.
type DataWatcher struct {
	files        map[string]bool // absolute paths
	holder       *Holder
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	stopped      bool
	cancel       context.CancelFunc // aborts an in-flight reload on Stop
	reloadChan   chan struct{}
	debounceTime time.Duration
	policy       retry.Policy
	wg           sync.WaitGroup
}

// WatcherOption configures a DataWatcher.
type WatcherOption func(*DataWatcher)

// WithRetryPolicy retries failed reloads according to p.
func WithRetryPolicy(p retry.Policy) WatcherOption {
	return func(dw *DataWatcher) { dw.policy = p }
}

// NewDataWatcher creates a watcher for files. A non-positive debounce
// defaults to 500ms. Failed reloads are not retried unless a retry policy
// is given.
func NewDataWatcher(files []string, holder *Holder, debounce time.Duration, opts ...WatcherOption) (*DataWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dw := &DataWatcher{
		files:        make(map[string]bool, len(files)),
		holder:       holder,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: debounce,
		policy:       retry.DefaultPolicy(),
	}
	for _, o := range opts {
		o(dw)
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to resolve path %s: %w", f, err)
		}
		dw.files[abs] = true
	}
	return dw, nil
}

// Start begins monitoring. Directories are watched rather than files so
// that editors which replace files on save are still seen.
func (dw *DataWatcher) Start(ctx context.Context) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	dirs := make(map[string]bool)
	for f := range dw.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := dw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		slog.Info("Watching data directory", logfields.Path(dir))
	}

	ctx, dw.cancel = context.WithCancel(ctx)
	dw.wg.Add(2)
	go dw.watchLoop(ctx)
	go dw.reloadLoop(ctx)
	return nil
}

// Stop stops the watcher and waits for a running reload to finish. It is
// safe to call more than once.
func (dw *DataWatcher) Stop() error {
	dw.mu.Lock()
	if dw.stopped {
		dw.mu.Unlock()
		return nil
	}
	dw.stopped = true
	close(dw.stopChan)
	if dw.cancel != nil {
		dw.cancel()
	}
	dw.mu.Unlock()

	err := dw.watcher.Close()
	dw.wg.Wait()
	return err
}

func (dw *DataWatcher) watchLoop(ctx context.Context) {
	defer dw.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-dw.stopChan:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !dw.files[abs] {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				slog.Debug("Data file change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				dw.triggerReload()
			case event.Op&fsnotify.Remove != 0:
				slog.Warn("Data file removed", logfields.File(event.Name))
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Data watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop owns the debounce timer and runs every reload itself, so a
// reload never outlives the loop.
func (dw *DataWatcher) reloadLoop(ctx context.Context) {
	defer dw.wg.Done()
	timer := time.NewTimer(dw.debounceTime)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-dw.stopChan:
			return
		case <-dw.reloadChan:
			timer.Reset(dw.debounceTime)
		case <-timer.C:
			if err := dw.policy.Do(ctx, "registry reload", dw.holder.Reload); err != nil {
				slog.Error("Failed to reload registry", logfields.Error(err))
			}
		}
	}
}

// triggerReload schedules a debounced reload.
func (dw *DataWatcher) triggerReload() {
	select {
	case dw.reloadChan <- struct{}{}:
	default:
		// Reload already pending
	}
}
