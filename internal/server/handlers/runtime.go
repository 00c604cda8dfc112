package handlers

import (
	"context"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/daemon"
	"git.home.luguber.info/inful/craftbook/internal/journal"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// RegistrySource yields the live registry. *daemon.Holder satisfies it.
type RegistrySource interface {
	Current() *registry.Registry
	Status() daemon.ReloadStatus
}

// SessionStore is the session surface the handlers need.
// *daemon.SessionManager satisfies it.
type SessionStore interface {
	Start(ctx context.Context, reg *registry.Registry, list []*recipe.Recipe, page int, origin string) (daemon.SessionView, error)
	View(id string) (daemon.SessionView, error)
	Invoke(ctx context.Context, id string, slot browse.Slot) (bool, daemon.SessionView, error)
	End(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]journal.Entry, error)
	Len() int
}

// DaemonInterface defines the daemon methods needed by monitoring handlers.
type DaemonInterface interface {
	GetStatus() daemon.Status
	Uptime() time.Duration
}
