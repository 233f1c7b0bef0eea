package storage

import (
	"context"

	"github.com/tavolo/dishsearch/core"
)

// Catalog provides relational storage for the restaurant hierarchy and the
// structured dish search. Implementations must be safe for concurrent reads;
// concurrent writers to the same dish id must be serialized by the caller.
type Catalog interface {
	// AddRestaurant inserts a restaurant and returns it with its ID populated.
	AddRestaurant(ctx context.Context, r *core.Restaurant) (*core.Restaurant, error)

	// AddMenu inserts a menu and returns it with its ID populated.
	AddMenu(ctx context.Context, m *core.Menu) (*core.Menu, error)

	// AddCategory inserts a category and returns it with its ID populated.
	AddCategory(ctx context.Context, c *core.Category) (*core.Category, error)

	// AddDish inserts a dish with its ingredients and returns it with its
	// ID populated.
	AddDish(ctx context.Context, d *core.Dish, ingredients ...core.Ingredient) (*core.Dish, error)

	// UpdateDish updates an existing dish in place. Returns ErrNotFound if
	// the dish does not exist.
	UpdateDish(ctx context.Context, d *core.Dish) error

	// DeleteDish removes a dish and its ingredients. Deleting a nonexistent
	// dish is a no-op.
	DeleteDish(ctx context.Context, id int64) error

	// GetDish retrieves a single dish by ID. Returns ErrNotFound if the
	// dish does not exist.
	GetDish(ctx context.Context, id int64) (*core.Dish, error)

	// SearchDishes compiles the filter into a single relational query and
	// returns matching dish IDs ordered by ascending price, ties broken by
	// ascending id. The visibility predicate (dish available, category and
	// menu active) is always applied. An empty filter returns all visible
	// dish IDs.
	SearchDishes(ctx context.Context, filter core.DishFilter) ([]int64, error)

	// GetDishDetails retrieves denormalized detail records for the given
	// dish IDs, ordered by ascending price. Unknown IDs are skipped.
	GetDishDetails(ctx context.Context, ids ...int64) ([]*core.DishDetail, error)

	// GetDishProfile retrieves the dish-shaped record consumed by the
	// embedding generator. Returns ErrNotFound if the dish does not exist.
	GetDishProfile(ctx context.Context, id int64) (*core.DishProfile, error)

	// ListDishIDs enumerates all dish IDs, available or not, in ascending
	// order. Used by reconciliation.
	ListDishIDs(ctx context.Context) ([]int64, error)

	// Close closes the catalog and releases resources.
	Close() error
}

// VectorRecord is one id→(vector, metadata) entry in the vector store.
// The id domain is always a subset of the dish id domain, in decimal
// string form.
type VectorRecord struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
}

// Neighbor is a nearest-neighbor query hit.
type Neighbor struct {
	ID       string
	Distance float32
	Metadata map[string]string
}

// VectorStore maintains one embedding per dish and supports nearest-neighbor
// retrieval. Implementations must document their distance metric and hold it
// fixed for the lifetime of an index. Implementations must be safe for
// concurrent reads.
type VectorStore interface {
	// Upsert inserts or replaces the record for id. Idempotent by id.
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error

	// BatchUpsert upserts every record independently: one failing id never
	// corrupts or aborts the others. Per-id failures are joined into the
	// returned error with the id wrapped in.
	BatchUpsert(ctx context.Context, records []VectorRecord) error

	// Get returns the full record for id, or ErrNotFound. Backing-store
	// faults are returned as-is.
	Get(ctx context.Context, id string) (*VectorRecord, error)

	// Query returns up to k nearest records to vector by ascending distance,
	// ties broken by ascending id. When filter is non-empty, only records
	// whose metadata contains every filter entry (string equality) are
	// considered. Returns fewer than k if fewer exist.
	Query(ctx context.Context, vector []float32, k int, filter map[string]string) ([]Neighbor, error)

	// Delete removes the record for id. Deleting a nonexistent id is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// ListIDs enumerates all stored ids in ascending numeric order. The cost
	// scales with metadata only; vectors are never read.
	ListIDs(ctx context.Context) ([]string, error)

	// Close closes the store and releases resources.
	Close() error
}
