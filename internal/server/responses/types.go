// Package responses defines API response types used by Craftbook HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/craftbook/internal/journal"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	Uptime       float64   `json:"uptime"`
	DaemonStatus string    `json:"daemon_status,omitempty"`
}

// StatusResponse represents the service status API response.
type StatusResponse struct {
	Status   string         `json:"status"`
	Uptime   float64        `json:"uptime"`
	Registry registry.Stats `json:"registry"`
	LoadedAt time.Time      `json:"loaded_at"`
	Reload   ReloadSummary  `json:"reload"`
	Sessions int            `json:"sessions"`
}

// ReloadSummary reports registry reload counters.
type ReloadSummary struct {
	Reloads    int       `json:"reloads"`
	Failures   int       `json:"failures"`
	LastReload time.Time `json:"last_reload"`
	LastError  string    `json:"last_error,omitempty"`
}

// RecipeView is the full representation of one recipe.
type RecipeView struct {
	Key         string             `json:"key"`
	Kind        string             `json:"kind"`
	Type        string             `json:"type,omitempty"` // smelting or smithing sub-kind
	Result      recipe.CraftResult `json:"result"`
	Apparatus   string             `json:"apparatus"`
	Group       string             `json:"group,omitempty"`
	Category    string             `json:"category,omitempty"`
	Experience  float64            `json:"experience,omitempty"`
	CookingTime int                `json:"cooking_time,omitempty"`
	Pattern     []string           `json:"pattern,omitempty"`
	Ingredients []string           `json:"ingredients"`
	Items       []string           `json:"items"`
	Version     string             `json:"version,omitempty"`
	Removed     string             `json:"removed_version,omitempty"`
	FeatureFlag string             `json:"feature_flag,omitempty"`
	Unreleased  bool               `json:"unreleased,omitempty"`
	Image       string             `json:"image"`
	Notes       string             `json:"notes,omitempty"`
	NotesHTML   string             `json:"notes_html,omitempty"`
	NoteLinks   []string           `json:"note_links,omitempty"`
}

// RecipeSummary is the compact form used in result lists.
type RecipeSummary struct {
	Key     string             `json:"key"`
	Kind    string             `json:"kind"`
	Result  recipe.CraftResult `json:"result"`
	Version string             `json:"version,omitempty"`
}

// SearchResponse lists the recipes matching a query in display order.
type SearchResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Count   int             `json:"count"`
	Recipes []RecipeSummary `json:"recipes"`
}

// SessionRequest starts a browsing session from a query.
type SessionRequest struct {
	Mode  string `json:"mode"`
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// ActionView is one row of a page's action table.
type ActionView struct {
	Slot        string `json:"slot"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

// PageView is a rendered browsing page.
type PageView struct {
	Index   int          `json:"index"`
	Total   int          `json:"total"`
	Recipe  RecipeView   `json:"recipe"`
	Actions []ActionView `json:"actions"`
}

// SessionResponse is a session and its current page.
type SessionResponse struct {
	ID      string   `json:"id"`
	Applied *bool    `json:"applied,omitempty"`
	Page    PageView `json:"page"`
}

// HistoryResponse lists the journal entries of a session.
type HistoryResponse struct {
	SessionID string          `json:"session_id"`
	Entries   []journal.Entry `json:"entries"`
}
