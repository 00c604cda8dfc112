package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "craftbook"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration    prom.Histogram
	reloads         *prom.CounterVec
	recipes         prom.Gauge
	queryDuration   *prom.HistogramVec
	queryResults    *prom.HistogramVec
	actions         *prom.CounterVec
	sessions        prom.Gauge
	sessionsEvicted prom.Counter
	httpDuration    *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "registry_load_duration_seconds",
			Help:      "Duration of recipe registry loads",
			Buckets:   prom.DefBuckets,
		}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "registry_reloads_total",
			Help:      "Registry reloads by result",
		}, []string{"result"}),
		recipes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_recipes",
			Help:      "Recipes in the published registry",
		}),
		queryDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of output and ingredient searches",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"kind"}),
		queryResults: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of recipes returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"kind"}),
		actions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "session_actions_total",
			Help:      "Browsing actions by slot and whether they changed the session",
		}, []string{"slot", "applied"}),
		sessions: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live browsing sessions",
		}),
		sessionsEvicted: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Browsing sessions evicted for inactivity",
		}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.loadDuration, pr.reloads, pr.recipes, pr.queryDuration, pr.queryResults,
		pr.actions, pr.sessions, pr.sessionsEvicted, pr.httpDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	p.reloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetRecipes(n int) { p.recipes.Set(float64(n)) }

func (p *PrometheusRecorder) ObserveQuery(kind string, d time.Duration, results int) {
	p.queryDuration.WithLabelValues(kind).Observe(d.Seconds())
	p.queryResults.WithLabelValues(kind).Observe(float64(results))
}

func (p *PrometheusRecorder) IncAction(slot string, applied bool) {
	p.actions.WithLabelValues(slot, strconv.FormatBool(applied)).Inc()
}

func (p *PrometheusRecorder) SetSessions(n int) { p.sessions.Set(float64(n)) }

func (p *PrometheusRecorder) AddSessionsEvicted(n int) { p.sessionsEvicted.Add(float64(n)) }

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	p.httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
