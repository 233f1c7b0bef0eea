package search

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/multilang"
	"github.com/tavolo/dishsearch/storage"
)

// Match is a single similarity search hit: the dish, its distance to the
// query vector, and the metadata snapshot stored alongside the embedding.
type Match struct {
	DishID   int64             `json:"dish_id"`
	Distance float32           `json:"distance"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Answer is a text search result with the localized response label for the
// detected query language. Callers that don't need localization use
// SearchByText instead and receive the matches alone.
type Answer struct {
	Locale  string  `json:"locale"`
	Label   string  `json:"label"`
	Matches []Match `json:"matches"`
}

// Engine orchestrates the two search paths: structured filters against the
// relational catalog, and similarity search against the vector store.
type Engine struct {
	catalog    storage.Catalog
	vectors    storage.VectorStore
	normalizer *multilang.Normalizer
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine over a catalog, a vector store, and
// a query normalizer. All three are externally owned handles; the engine
// never opens or closes them.
func NewEngine(
	catalog storage.Catalog,
	vectors storage.VectorStore,
	normalizer *multilang.Normalizer,
	opts ...Option,
) (*Engine, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}

	e := &Engine{
		catalog:    catalog,
		vectors:    vectors,
		normalizer: normalizer,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// SearchStructured returns the ids of available dishes matching every
// criterion in the filter, sorted ascending by price then id. An empty
// filter returns all available dishes.
func (e *Engine) SearchStructured(ctx context.Context, filter core.DishFilter) ([]int64, error) {
	ids, err := e.catalog.SearchDishes(ctx, filter)
	if err != nil {
		e.logger.Error("structured search failed", "err", err)
		return nil, err
	}
	return ids, nil
}

// SearchByVector returns up to k dishes nearest to the given vector,
// ordered by ascending distance. The optional metadata filter restricts
// candidates by exact match before ranking.
func (e *Engine) SearchByVector(ctx context.Context, vector []float32, k int, filter map[string]string) ([]Match, error) {
	neighbors, err := e.vectors.Query(ctx, vector, k, filter)
	if err != nil {
		e.logger.Error("vector search failed", "err", err)
		return nil, err
	}
	return e.toMatches(neighbors), nil
}

// SearchByText embeds a free-text query and returns up to k nearest dishes.
// The localized label produced during normalization is discarded; use Ask
// to retain it.
func (e *Engine) SearchByText(ctx context.Context, query string, k int) ([]Match, error) {
	answer, err := e.AskWithMonitor(ctx, query, k, nil)
	if err != nil {
		return nil, err
	}
	return answer.Matches, nil
}

// Ask embeds a free-text query and returns the nearest dishes together with
// the localized response label for the detected query language.
func (e *Engine) Ask(ctx context.Context, query string, k int) (*Answer, error) {
	return e.AskWithMonitor(ctx, query, k, nil)
}

// AskWithMonitor runs a text search with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (e *Engine) AskWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) (*Answer, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	normalized, err := e.normalizer.Normalize(ctx, query)
	if err != nil {
		e.logger.Error("error normalizing query", "err", err)
		return nil, err
	}
	monitor.QueryNormalized(normalized.Locale, len(normalized.Vector))

	neighbors, err := e.vectors.Query(ctx, normalized.Vector, k, nil)
	if err != nil {
		e.logger.Error("vector search failed", "locale", normalized.Locale, "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(neighbors)

	matches := e.toMatches(neighbors)
	monitor.Finish(matches)

	return &Answer{
		Locale:  normalized.Locale,
		Label:   normalized.Label,
		Matches: matches,
	}, nil
}

// SimilarTo returns up to k dishes most similar to the dish with the given
// id, excluding the dish itself. Returns storage.ErrNotFound when no
// embedding exists for the id.
func (e *Engine) SimilarTo(ctx context.Context, dishID int64, k int) ([]Match, error) {
	vectorID := strconv.FormatInt(dishID, 10)

	record, err := e.vectors.Get(ctx, vectorID)
	if err != nil {
		return nil, err
	}

	// Query for one extra: the reference dish is always its own nearest
	// neighbor at distance zero.
	neighbors, err := e.vectors.Query(ctx, record.Vector, k+1, nil)
	if err != nil {
		e.logger.Error("similarity search failed", "dishID", dishID, "err", err)
		return nil, err
	}

	matches := make([]Match, 0, k)
	for _, n := range neighbors {
		if n.ID == vectorID {
			continue
		}
		matches = append(matches, e.toMatch(n))
		if len(matches) == k {
			break
		}
	}
	return matches, nil
}

// FetchDetails joins dish ids back to full dish and restaurant metadata.
// Unknown ids are omitted from the result rather than erroring.
func (e *Engine) FetchDetails(ctx context.Context, ids []int64) ([]*core.DishDetail, error) {
	if len(ids) == 0 {
		return []*core.DishDetail{}, nil
	}
	details, err := e.catalog.GetDishDetails(ctx, ids...)
	if err != nil {
		e.logger.Error("detail fetch failed", "idCount", len(ids), "err", err)
		return nil, err
	}
	return details, nil
}

func (e *Engine) toMatches(neighbors []storage.Neighbor) []Match {
	matches := make([]Match, 0, len(neighbors))
	for _, n := range neighbors {
		matches = append(matches, e.toMatch(n))
	}
	return matches
}

func (e *Engine) toMatch(n storage.Neighbor) Match {
	id, err := strconv.ParseInt(n.ID, 10, 64)
	if err != nil {
		// Vector store ids are always derived from dish ids; a
		// non-numeric id indicates external tampering.
		e.logger.Warn("non-numeric vector id in results", "id", n.ID)
	}
	return Match{
		DishID:   id,
		Distance: n.Distance,
		Metadata: n.Metadata,
	}
}
