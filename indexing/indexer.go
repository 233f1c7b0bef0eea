package indexing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/storage"
)

// Indexer keeps the vector store synchronized with the dish catalog. It is
// the batch collaborator the search core assumes exists: dishes are
// embedded and upserted here, never from the search path.
type Indexer struct {
	catalog   storage.Catalog
	vectors   storage.VectorStore
	generator *embedding.Generator
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new indexer over a catalog, a vector store, and an
// embedding generator.
func NewIndexer(
	catalog storage.Catalog,
	vectors storage.VectorStore,
	generator *embedding.Generator,
	opts ...Option,
) (*Indexer, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		catalog:   catalog,
		vectors:   vectors,
		generator: generator,
		pool:      pool,
		logger:    slog.Default().With("component", "indexer"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			ix.Release()
			return nil, err
		}
	}

	return ix, nil
}

// IndexDish embeds a single dish and upserts its vector and metadata.
// The metadata snapshot carries the denormalized context returned on
// similarity hits plus the embedding-text fingerprint used by Verify.
func (ix *Indexer) IndexDish(ctx context.Context, dishID int64) error {
	profile, err := ix.catalog.GetDishProfile(ctx, dishID)
	if err != nil {
		return err
	}

	vector, err := ix.generator.EmbedDish(ctx, profile)
	if err != nil {
		return err
	}

	text := embedding.DishText(profile)
	metadata := map[string]string{
		"name":        profile.Name,
		"category":    profile.Category,
		"menu":        profile.Menu,
		"restaurant":  profile.Restaurant,
		"price":       strconv.FormatFloat(profile.Price, 'f', -1, 64),
		"fingerprint": core.Fingerprint(text),
	}

	if err := ix.vectors.Upsert(ctx, profile.VectorID(), vector, metadata); err != nil {
		return err
	}

	ix.logger.Debug("indexed dish", "dishID", dishID, "dimensions", len(vector))
	return nil
}

// IndexDishes embeds the given dishes concurrently. Each id is processed
// independently: a failing id never aborts the remainder. Per-id failures
// are joined into the returned error. No automatic retry is performed;
// retry is a caller policy.
func (ix *Indexer) IndexDishes(ctx context.Context, dishIDs []int64) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, id := range dishIDs {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		dishID := id
		submitErr := ix.pool.Submit(func() {
			defer wg.Done()
			if err := ix.IndexDish(ctx, dishID); err != nil {
				ix.logger.Warn("failed to index dish", "dishID", dishID, "err", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("dish %d: %w", dishID, err))
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("dish %d: %w", dishID, submitErr))
			mu.Unlock()
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// IndexAll embeds every dish in the catalog, available or not.
func (ix *Indexer) IndexAll(ctx context.Context) error {
	ids, err := ix.catalog.ListDishIDs(ctx)
	if err != nil {
		return err
	}
	ix.logger.Info("reindexing catalog", "dishCount", len(ids))
	return ix.IndexDishes(ctx, ids)
}

// RemoveDish deletes the vector-store record for a dish. Removing a dish
// that was never indexed is a no-op.
func (ix *Indexer) RemoveDish(ctx context.Context, dishID int64) error {
	return ix.vectors.Delete(ctx, strconv.FormatInt(dishID, 10))
}

// Release releases the worker pool. The indexer should not be used after
// calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
