// Package journal records browsing session activity.
package journal

import (
	"context"
	"time"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindStart  Kind = "start"
	KindAction Kind = "action"
	KindEnd    Kind = "end"
)

// Entry is one recorded navigation step.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      Kind      `json:"kind"`
	Slot      string    `json:"slot,omitempty"`
	RecipeKey string    `json:"recipe_key"`
	Page      int       `json:"page"`
	Detail    string    `json:"detail,omitempty"`
	Time      time.Time `json:"time"`
}

// Store persists entries.
type Store interface {
	Append(ctx context.Context, e Entry) error
	BySession(ctx context.Context, sessionID string) ([]Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// NoopStore discards everything (default when the journal is disabled).
type NoopStore struct{}

func (NoopStore) Append(context.Context, Entry) error                { return nil }
func (NoopStore) BySession(context.Context, string) ([]Entry, error) { return nil, nil }
func (NoopStore) Recent(context.Context, int) ([]Entry, error)       { return nil, nil }
func (NoopStore) Close() error                                       { return nil }
