package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/server/responses"
)

// RecipeHandlers serves recipe lookups and searches.
type RecipeHandlers struct {
	registry     RegistrySource
	recorder     metrics.Recorder
	errorAdapter *errors.HTTPErrorAdapter
}

// NewRecipeHandlers creates recipe handlers. A nil recorder disables metrics.
func NewRecipeHandlers(reg RegistrySource, rec metrics.Recorder) *RecipeHandlers {
	return &RecipeHandlers{
		registry:     reg,
		recorder:     metrics.OrNoop(rec),
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleGetRecipe handles GET /api/recipes/{key}.
func (h *RecipeHandlers) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	reg, ok := currentRegistry(w, r, h.registry, h.errorAdapter)
	if !ok {
		return
	}

	key := r.PathValue("key")
	rec, found := reg.Get(key)
	if !found {
		h.errorAdapter.WriteErrorResponse(w, r, errors.NotFound("recipe", key))
		return
	}

	if err := writeJSONPretty(w, r, http.StatusOK, responses.Recipe(reg, rec)); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write recipe response"))
	}
}

// HandleSearch handles GET /api/search/{mode}?q=.
func (h *RecipeHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	reg, ok := currentRegistry(w, r, h.registry, h.errorAdapter)
	if !ok {
		return
	}

	mode, err := registry.ParseMode(r.PathValue("mode"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("missing query parameter").WithContext("param", "q"))
		return
	}

	start := time.Now()
	list, err := reg.Search(mode, query)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.recorder.ObserveQuery(string(mode), time.Since(start), len(list))
	slog.Debug("Search", logfields.Mode(string(mode)), logfields.Query(query), logfields.Count(len(list)))

	resp := &responses.SearchResponse{
		Query:   query,
		Mode:    string(mode),
		Count:   len(list),
		Recipes: responses.Summaries(reg, list),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write search response"))
	}
}

func currentRegistry(w http.ResponseWriter, r *http.Request, src RegistrySource, adapter *errors.HTTPErrorAdapter) (*registry.Registry, bool) {
	reg := src.Current()
	if reg == nil {
		adapter.WriteErrorResponse(w, r, errors.New(errors.CategoryRuntime, errors.SeverityWarning, "registry not loaded"))
		return nil, false
	}
	return reg, true
}
