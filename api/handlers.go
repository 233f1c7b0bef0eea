package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/indexing"
	"github.com/tavolo/dishsearch/search"
	"github.com/tavolo/dishsearch/storage"
)

const DefaultLimit = 10

// Handlers exposes the search engine and indexer over JSON HTTP.
type Handlers struct {
	engine  *search.Engine
	indexer *indexing.Indexer
	logger  *slog.Logger
}

// NewHandlers creates the HTTP handler set. The indexer is optional; when
// nil the reindex and verify endpoints respond 503.
func NewHandlers(engine *search.Engine, indexer *indexing.Indexer) *Handlers {
	return &Handlers{
		engine:  engine,
		indexer: indexer,
		logger:  slog.Default().With("component", "api"),
	}
}

// Routes registers all endpoints on mux.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dishes/search", h.SearchStructured)
	mux.HandleFunc("POST /api/dishes/search", h.SearchByVector)
	mux.HandleFunc("POST /api/dishes/search-by-text", h.SearchByText)
	mux.HandleFunc("GET /api/dishes/{id}", h.GetDish)
	mux.HandleFunc("GET /api/dishes/{id}/similar", h.Similar)
	mux.HandleFunc("POST /api/index/reindex", h.Reindex)
	mux.HandleFunc("GET /api/index/verify", h.Verify)
	mux.HandleFunc("GET /health", h.Health)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// ParseFilter extracts structured search criteria from the URL query.
func ParseFilter(query url.Values) core.DishFilter {
	var f core.DishFilter

	f.Name = query.Get("name")
	if f.Name == "" {
		f.Name = query.Get("q")
	}
	f.Category = query.Get("category")
	f.Restaurant = query.Get("restaurant")

	if s := query.Get("min_price"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.MinPrice = &v
		}
	}
	if s := query.Get("max_price"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.MaxPrice = &v
		}
	}
	return f
}

// SearchStructured handles GET /api/dishes/search. With details=true the
// response carries full dish records instead of bare ids.
func (h *Handlers) SearchStructured(w http.ResponseWriter, r *http.Request) {
	filter := ParseFilter(r.URL.Query())

	ids, err := h.engine.SearchStructured(r.Context(), filter)
	if err != nil {
		h.logger.Error("structured search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if r.URL.Query().Get("details") != "true" {
		writeJSON(w, http.StatusOK, map[string]any{"dish_ids": ids, "count": len(ids)})
		return
	}

	details, err := h.engine.FetchDetails(r.Context(), ids)
	if err != nil {
		h.logger.Error("detail fetch failed", "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dishes": details, "count": len(details)})
}

type vectorSearchRequest struct {
	Embedding []float32         `json:"embedding"`
	K         int               `json:"k"`
	Filter    map[string]string `json:"filter,omitempty"`
}

// SearchByVector handles POST /api/dishes/search with a literal embedding.
func (h *Handlers) SearchByVector(w http.ResponseWriter, r *http.Request) {
	var req vectorSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Embedding) == 0 {
		writeError(w, http.StatusBadRequest, "embedding is required")
		return
	}
	if req.K <= 0 {
		req.K = DefaultLimit
	}

	matches, err := h.engine.SearchByVector(r.Context(), req.Embedding, req.K, req.Filter)
	if err != nil {
		if errors.Is(err, storage.ErrDimensionMismatch) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("vector search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

type textSearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// SearchByText handles POST /api/dishes/search-by-text. The response
// includes the localized label for the detected query language.
func (h *Handlers) SearchByText(w http.ResponseWriter, r *http.Request) {
	var req textSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.K <= 0 {
		req.K = DefaultLimit
	}

	answer, err := h.engine.Ask(r.Context(), req.Query, req.K)
	if err != nil {
		h.logger.Error("text search failed", "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

// GetDish handles GET /api/dishes/{id}.
func (h *Handlers) GetDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dish id")
		return
	}

	details, err := h.engine.FetchDetails(r.Context(), []int64{id})
	if err != nil {
		h.logger.Error("detail fetch failed", "dishID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if len(details) == 0 {
		writeError(w, http.StatusNotFound, "dish not found")
		return
	}
	writeJSON(w, http.StatusOK, details[0])
}

// Similar handles GET /api/dishes/{id}/similar.
func (h *Handlers) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dish id")
		return
	}
	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	if k <= 0 {
		k = DefaultLimit
	}

	matches, err := h.engine.SimilarTo(r.Context(), id, k)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "dish not indexed")
			return
		}
		h.logger.Error("similarity search failed", "dishID", id, "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

// Reindex handles POST /api/index/reindex, re-embedding the whole catalog.
func (h *Handlers) Reindex(w http.ResponseWriter, r *http.Request) {
	if h.indexer == nil {
		writeError(w, http.StatusServiceUnavailable, "indexing not available")
		return
	}
	if err := h.indexer.IndexAll(r.Context()); err != nil {
		h.logger.Error("reindex failed", "err", err)
		writeError(w, http.StatusInternalServerError, "reindex failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Verify handles GET /api/index/verify, reporting catalog/vector-store
// divergence without modifying anything.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	if h.indexer == nil {
		writeError(w, http.StatusServiceUnavailable, "indexing not available")
		return
	}
	report, err := h.indexer.Verify(r.Context())
	if err != nil {
		h.logger.Error("verify failed", "err", err)
		writeError(w, http.StatusInternalServerError, "verify failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clean":    report.Clean(),
		"missing":  report.Missing,
		"orphaned": report.Orphaned,
		"stale":    report.Stale,
	})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
