package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	pubErr  error
	flushed bool
	closed  bool
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.subject = subj
	f.data = data
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error {
	f.flushed = true
	return nil
}

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisher_PublishReload(t *testing.T) {
	fc := &fakeConn{}
	p := &NATSPublisher{conn: fc, subject: "craftbook.registry.reloaded"}

	err := p.PublishReload(context.Background(), ReloadEvent{Recipes: 42, Flags: []string{"vanilla"}, Snapshot: "abc"})
	require.NoError(t, err)
	assert.True(t, fc.flushed)
	assert.Equal(t, "craftbook.registry.reloaded", fc.subject)

	var got ReloadEvent
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, 42, got.Recipes)
	assert.Equal(t, []string{"vanilla"}, got.Flags)
	assert.False(t, got.Timestamp.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, fc.closed)
}

func TestNATSPublisher_PublishError(t *testing.T) {
	fc := &fakeConn{pubErr: errors.New("connection closed")}
	p := &NATSPublisher{conn: fc, subject: "s"}

	err := p.PublishReload(context.Background(), ReloadEvent{Timestamp: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection closed")
	assert.False(t, fc.flushed)
}

func TestNewNATSPublisher_RequiresSubject(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:4222", "")
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	require.NoError(t, p.PublishReload(context.Background(), ReloadEvent{}))
	require.NoError(t, p.Close())
}
