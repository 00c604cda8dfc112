package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for registry loads, queries and
// browsing sessions. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveLoadDuration(d time.Duration)
	IncReload(result ResultLabel)
	SetRecipes(n int)
	ObserveQuery(kind string, d time.Duration, results int)
	IncAction(slot string, applied bool)
	SetSessions(n int)
	AddSessionsEvicted(n int)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(time.Duration)             {}
func (NoopRecorder) IncReload(ResultLabel)                         {}
func (NoopRecorder) SetRecipes(int)                                {}
func (NoopRecorder) ObserveQuery(string, time.Duration, int)       {}
func (NoopRecorder) IncAction(string, bool)                        {}
func (NoopRecorder) SetSessions(int)                               {}
func (NoopRecorder) AddSessionsEvicted(int)                        {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
