// Package notify announces registry reloads to other processes.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
)

// ReloadEvent describes a registry swap.
type ReloadEvent struct {
	Recipes    int       `json:"recipes"`
	Flags      []string  `json:"flags"`
	Snapshot   string    `json:"snapshot"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers reload events.
type Publisher interface {
	PublishReload(ctx context.Context, ev ReloadEvent) error
	Close() error
}

// Noop drops events.
type Noop struct{}

func (Noop) PublishReload(context.Context, ReloadEvent) error { return nil }
func (Noop) Close() error                                     { return nil }

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher publishes reload events on a NATS subject.
type NATSPublisher struct {
	conn    conn
	subject string
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		return nil, fmt.Errorf("notify subject is required")
	}
	nc, err := nats.Connect(url,
		nats.Name("craftbook"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized", logfields.URL(url), logfields.Subject(subject))
	return &NATSPublisher{conn: nc, subject: subject}, nil
}

// PublishReload publishes ev as JSON and waits for the server to accept it.
func (p *NATSPublisher) PublishReload(ctx context.Context, ev ReloadEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}

	slog.Debug("Published reload event", logfields.Subject(p.subject), logfields.Count(ev.Recipes))
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
