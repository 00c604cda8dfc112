package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/daemon"
	"git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/journal"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/server/responses"
)

const maxSessionRequestBytes = 64 << 10

// SessionHandlers serves browsing sessions.
type SessionHandlers struct {
	registry     RegistrySource
	sessions     SessionStore
	errorAdapter *errors.HTTPErrorAdapter
}

// NewSessionHandlers creates session handlers.
func NewSessionHandlers(reg RegistrySource, sessions SessionStore) *SessionHandlers {
	return &SessionHandlers{
		registry:     reg,
		sessions:     sessions,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleCreate handles POST /api/sessions. A query with no matches is a
// 404 since there is nothing to browse.
func (h *SessionHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reg, ok := currentRegistry(w, r, h.registry, h.errorAdapter)
	if !ok {
		return
	}

	var req responses.SessionRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSessionRequestBytes))
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(err, errors.CategoryValidation, errors.SeverityWarning, "invalid session request"))
		return
	}

	mode, err := registry.ParseMode(req.Mode)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if req.Query == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("missing query").WithContext("field", "query"))
		return
	}
	list, err := reg.Search(mode, req.Query)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if len(list) == 0 {
		h.errorAdapter.WriteErrorResponse(w, r, errors.NotFound("recipes", req.Query).WithContext("mode", string(mode)))
		return
	}

	view, err := h.sessions.Start(r.Context(), reg, list, req.Page, string(mode)+":"+req.Query)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	slog.Info("Browsing session started", logfields.SessionID(view.ID), logfields.Mode(string(mode)), logfields.Query(req.Query))
	h.write(w, r, http.StatusCreated, view, nil)
}

// HandleGet handles GET /api/sessions/{id}.
func (h *SessionHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.PathValue("id"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.write(w, r, http.StatusOK, view, nil)
}

// HandleAction handles POST /api/sessions/{id}/actions/{slot}. Unknown or
// disabled slots leave the session unchanged and report applied=false.
func (h *SessionHandlers) HandleAction(w http.ResponseWriter, r *http.Request) {
	slot, valid := browse.ParseSlot(r.PathValue("slot"))
	if !valid {
		slot = browse.Slot(-1)
	}

	applied, view, err := h.sessions.Invoke(r.Context(), r.PathValue("id"), slot)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	slog.Debug("Session action",
		logfields.SessionID(view.ID),
		logfields.Slot(r.PathValue("slot")),
		slog.Bool("applied", applied),
		logfields.RecipeKey(view.Page.Recipe.Key))
	h.write(w, r, http.StatusOK, view, &applied)
}

// HandleDelete handles DELETE /api/sessions/{id}.
func (h *SessionHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), r.PathValue("id")); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleHistory handles GET /api/sessions/{id}/history.
func (h *SessionHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entries, err := h.sessions.History(r.Context(), id)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to read journal"))
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	resp := &responses.HistoryResponse{SessionID: id, Entries: entries}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write history response"))
	}
}

func (h *SessionHandlers) write(w http.ResponseWriter, r *http.Request, status int, view daemon.SessionView, applied *bool) {
	resp := &responses.SessionResponse{
		ID:      view.ID,
		Applied: applied,
		Page:    responses.Page(view.Registry, view.Page),
	}
	if err := writeJSONPretty(w, r, status, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write session response"))
	}
}
