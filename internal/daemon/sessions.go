package daemon

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/journal"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// SessionOptions configures a SessionManager.
type SessionOptions struct {
	Max         int           // 0 means unlimited
	IdleTimeout time.Duration // 0 disables idle eviction
	Journal     journal.Store
	Recorder    metrics.Recorder
}

// SessionManager owns the live browsing sessions. A session keeps the
// registry it was started with, so a registry reload never changes a page
// under a user.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	max      int
	idle     time.Duration
	journal  journal.Store
	recorder metrics.Recorder
	now      func() time.Time
}

type sessionEntry struct {
	mu       sync.Mutex // serialises navigation
	reg      *registry.Registry
	sess     *browse.Session
	origin   string
	created  time.Time
	lastUsed atomic.Int64 // unix nanoseconds
}

// SessionView is a rendered page together with the registry the session
// browses.
type SessionView struct {
	ID       string
	Page     browse.Page
	Registry *registry.Registry
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID       string    `json:"id"`
	Origin   string    `json:"origin,omitempty"`
	Created  time.Time `json:"created"`
	LastUsed time.Time `json:"last_used"`
}

// NewSessionManager creates an empty manager.
func NewSessionManager(opts SessionOptions) *SessionManager {
	m := &SessionManager{
		sessions: make(map[string]*sessionEntry),
		max:      max(opts.Max, 0),
		idle:     opts.IdleTimeout,
		journal:  opts.Journal,
		recorder: metrics.OrNoop(opts.Recorder),
		now:      time.Now,
	}
	if m.journal == nil {
		m.journal = journal.NoopStore{}
	}
	return m
}

// Start opens a session over list positioned on page. origin describes the
// query that produced the list and is recorded in the journal.
func (m *SessionManager) Start(ctx context.Context, reg *registry.Registry, list []*recipe.Recipe, page int, origin string) (SessionView, error) {
	sess, err := browse.New(reg, list, page)
	if err != nil {
		return SessionView{}, derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityWarning, "cannot start session")
	}

	now := m.now()
	e := &sessionEntry{reg: reg, sess: sess, origin: origin, created: now}
	e.lastUsed.Store(now.UnixNano())
	id := uuid.NewString()

	m.mu.Lock()
	if m.max > 0 && len(m.sessions) >= m.max {
		m.mu.Unlock()
		return SessionView{}, derrors.SessionLimit(m.max)
	}
	m.sessions[id] = e
	n := len(m.sessions)
	m.mu.Unlock()

	m.recorder.SetSessions(n)
	first := sess.Render()
	m.record(ctx, journal.Entry{
		SessionID: id,
		Kind:      journal.KindStart,
		RecipeKey: first.Recipe.Key,
		Page:      first.Index,
		Detail:    origin,
	})
	slog.Debug("Session started", logfields.SessionID(id), logfields.Count(first.Total), logfields.Query(origin))
	return SessionView{ID: id, Page: first, Registry: reg}, nil
}

// View renders the session's current page.
func (m *SessionManager) View(id string) (SessionView, error) {
	e, err := m.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed.Store(m.now().UnixNano())
	return SessionView{ID: id, Page: e.sess.Render(), Registry: e.reg}, nil
}

// Invoke performs slot's action. Disabled or unknown slots leave the
// session where it is and report false.
func (m *SessionManager) Invoke(ctx context.Context, id string, slot browse.Slot) (bool, SessionView, error) {
	e, err := m.lookup(id)
	if err != nil {
		return false, SessionView{}, err
	}

	e.mu.Lock()
	e.lastUsed.Store(m.now().UnixNano())
	applied := e.sess.Invoke(slot)
	page := e.sess.Render()
	e.mu.Unlock()

	m.recorder.IncAction(slot.String(), applied)
	slog.Debug("Session action", logfields.SessionID(id), logfields.Slot(slot.String()),
		slog.Bool("applied", applied), logfields.Page(page.Index))
	if applied {
		m.record(ctx, journal.Entry{
			SessionID: id,
			Kind:      journal.KindAction,
			Slot:      slot.String(),
			RecipeKey: page.Recipe.Key,
			Page:      page.Index,
		})
	}
	return applied, SessionView{ID: id, Page: page, Registry: e.reg}, nil
}

// End closes a session.
func (m *SessionManager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return derrors.SessionNotFound(id)
	}

	m.recorder.SetSessions(n)
	e.mu.Lock()
	cur := e.sess.State()
	e.mu.Unlock()
	m.record(ctx, journal.Entry{SessionID: id, Kind: journal.KindEnd, RecipeKey: cur.Current().Key, Page: cur.Page})
	return nil
}

// Sweep evicts sessions idle for longer than the idle timeout and returns
// how many were removed.
func (m *SessionManager) Sweep(ctx context.Context) int {
	if m.idle <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idle).UnixNano()

	m.mu.Lock()
	var evicted []string
	for id, e := range m.sessions {
		if e.lastUsed.Load() < cutoff {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if len(evicted) == 0 {
		return 0
	}
	m.recorder.SetSessions(n)
	m.recorder.AddSessionsEvicted(len(evicted))
	for _, id := range evicted {
		m.record(ctx, journal.Entry{SessionID: id, Kind: journal.KindEnd, Detail: "idle"})
	}
	slog.Info("Evicted idle sessions", logfields.Count(len(evicted)))
	return len(evicted)
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Info describes a live session.
func (m *SessionManager) Info(id string) (SessionInfo, error) {
	e, err := m.lookup(id)
	if err != nil {
		return SessionInfo{}, err
	}
	return SessionInfo{
		ID:       id,
		Origin:   e.origin,
		Created:  e.created,
		LastUsed: time.Unix(0, e.lastUsed.Load()),
	}, nil
}

// History returns the journal entries of a session, live or ended.
func (m *SessionManager) History(ctx context.Context, id string) ([]journal.Entry, error) {
	return m.journal.BySession(ctx, id)
}

func (m *SessionManager) lookup(id string) (*sessionEntry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, derrors.SessionNotFound(id)
	}
	return e, nil
}

func (m *SessionManager) record(ctx context.Context, e journal.Entry) {
	e.Time = m.now()
	if err := m.journal.Append(ctx, e); err != nil {
		slog.Warn("Failed to append journal entry", logfields.SessionID(e.SessionID), logfields.Error(err))
	}
}
