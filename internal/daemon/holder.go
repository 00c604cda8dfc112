package daemon

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/notify"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// LoaderFunc builds a fresh registry.
type LoaderFunc func(ctx context.Context) (*registry.Registry, error)

// ReloadStatus describes the outcome of the most recent reload.
type ReloadStatus struct {
	Reloads    int       `json:"reloads"`
	Failures   int       `json:"failures"`
	LastReload time.Time `json:"last_reload"`
	LastError  string    `json:"last_error,omitempty"`
}

// Holder publishes the current registry to concurrent readers. Readers
// always see a complete registry; a failed reload keeps the previous one.
type Holder struct {
	cur       atomic.Pointer[registry.Registry]
	load      LoaderFunc
	snapshot  string
	recorder  metrics.Recorder
	publisher notify.Publisher

	mu     sync.Mutex // serialises reloads and guards status
	status ReloadStatus
}

// HolderOption configures a Holder.
type HolderOption func(*Holder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) HolderOption {
	return func(h *Holder) { h.recorder = metrics.OrNoop(r) }
}

// WithPublisher sets where reload events go.
func WithPublisher(p notify.Publisher) HolderOption {
	return func(h *Holder) {
		if p != nil {
			h.publisher = p
		}
	}
}

// WithSnapshot tags reload events with a configuration fingerprint.
func WithSnapshot(s string) HolderOption {
	return func(h *Holder) { h.snapshot = s }
}

// NewHolder creates an empty holder. Call Reload to populate it.
func NewHolder(load LoaderFunc, opts ...HolderOption) *Holder {
	h := &Holder{load: load, recorder: metrics.NoopRecorder{}, publisher: notify.Noop{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewStaticHolder wraps an already built registry. Reload swaps in the
// same registry again.
func NewStaticHolder(reg *registry.Registry) *Holder {
	h := NewHolder(func(context.Context) (*registry.Registry, error) { return reg, nil })
	h.cur.Store(reg)
	return h
}

// Current returns the live registry, or nil before the first reload.
func (h *Holder) Current() *registry.Registry { return h.cur.Load() }

// Status reports reload counters.
func (h *Holder) Status() ReloadStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Reload builds a new registry and swaps it in on success.
func (h *Holder) Reload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	reg, err := h.load(ctx)
	elapsed := time.Since(start)
	h.recorder.ObserveLoadDuration(elapsed)
	h.status.LastReload = time.Now()

	if err != nil {
		h.status.Failures++
		h.status.LastError = err.Error()
		h.recorder.IncReload(metrics.ResultFailed)
		if h.cur.Load() != nil {
			slog.Error("Registry reload failed; keeping previous registry", logfields.Error(err))
		}
		return err
	}

	h.cur.Store(reg)
	h.status.Reloads++
	h.status.LastError = ""
	h.recorder.IncReload(metrics.ResultSuccess)
	h.recorder.SetRecipes(reg.Len())

	slog.Info("Registry loaded",
		logfields.Count(reg.Len()),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	ev := notify.ReloadEvent{
		Recipes:    reg.Len(),
		Flags:      reg.Flags().Layers(),
		Snapshot:   h.snapshot,
		DurationMS: elapsed.Milliseconds(),
		Timestamp:  h.status.LastReload,
	}
	if err := h.publisher.PublishReload(ctx, ev); err != nil {
		slog.Warn("Failed to publish reload event", logfields.Error(err))
	}
	return nil
}
