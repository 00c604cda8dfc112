package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/server/responses"
	"git.home.luguber.info/inful/craftbook/internal/version"
)

// MonitoringHandlers contains monitoring-related HTTP handlers.
type MonitoringHandlers struct {
	daemon       DaemonInterface
	registry     RegistrySource
	sessions     SessionStore
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(d DaemonInterface, reg RegistrySource, sessions SessionStore) *MonitoringHandlers {
	return &MonitoringHandlers{
		daemon:       d,
		registry:     reg,
		sessions:     sessions,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck handles the health check endpoint. It reports 503
// until a registry has been loaded.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}
	if h.daemon != nil {
		health.DaemonStatus = string(h.daemon.GetStatus())
		health.Uptime = h.daemon.Uptime().Seconds()
	}

	status := http.StatusOK
	if h.registry.Current() == nil {
		health.Status = "starting"
		status = http.StatusServiceUnavailable
	}

	if err := writeJSONPretty(w, r, status, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write health response"))
	}
}

// HandleStatus reports registry statistics, reload counters and the number
// of live sessions.
func (h *MonitoringHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	reg := h.registry.Current()
	if reg == nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.New(errors.CategoryRuntime, errors.SeverityWarning, "registry not loaded"))
		return
	}

	rs := h.registry.Status()
	resp := &responses.StatusResponse{
		Status:   "ok",
		Registry: reg.Stats(),
		LoadedAt: reg.LoadedAt(),
		Reload: responses.ReloadSummary{
			Reloads:    rs.Reloads,
			Failures:   rs.Failures,
			LastReload: rs.LastReload,
			LastError:  rs.LastError,
		},
		Sessions: h.sessions.Len(),
	}
	if h.daemon != nil {
		resp.Status = string(h.daemon.GetStatus())
		resp.Uptime = h.daemon.Uptime().Seconds()
	}

	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write status response"))
	}
}
