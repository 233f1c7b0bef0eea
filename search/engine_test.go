package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/embedding"
	"github.com/tavolo/dishsearch/embedding/mock"
	"github.com/tavolo/dishsearch/multilang"
	"github.com/tavolo/dishsearch/storage"
	"github.com/tavolo/dishsearch/storage/badgervec"
	"github.com/tavolo/dishsearch/storage/sqldb"
)

const testDims = 3

// newTestEngine builds an engine over an in-memory catalog and vector
// store. The mock embedder encodes every text to the same unit vector so
// tests control distances by what they upsert.
func newTestEngine(t *testing.T) (*Engine, storage.Catalog, storage.VectorStore) {
	t.Helper()

	catalog, err := sqldb.NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	vectors, err := badgervec.NewMemoryStore(testDims)
	require.NoError(t, err)
	t.Cleanup(func() { vectors.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	generator, err := embedding.NewGenerator(embedder)
	require.NoError(t, err)
	normalizer, err := multilang.NewNormalizer(generator)
	require.NoError(t, err)

	engine, err := NewEngine(catalog, vectors, normalizer)
	require.NoError(t, err)
	return engine, catalog, vectors
}

// seedDishes inserts a minimal hierarchy with two dishes and returns their ids.
func seedDishes(t *testing.T, catalog storage.Catalog) (pizzaID, burgerID int64) {
	t.Helper()
	ctx := context.Background()

	restaurant, err := catalog.AddRestaurant(ctx, &core.Restaurant{Name: "Pizza Palace", IsActive: true})
	require.NoError(t, err)
	menu, err := catalog.AddMenu(ctx, &core.Menu{RestaurantID: restaurant.ID, Name: "Main Menu", IsActive: true})
	require.NoError(t, err)
	category, err := catalog.AddCategory(ctx, &core.Category{MenuID: menu.ID, Name: "Mains", IsActive: true})
	require.NoError(t, err)

	pizza, err := catalog.AddDish(ctx, &core.Dish{
		CategoryID: category.ID, Name: "Margherita Pizza", Price: 1200, IsAvailable: true,
	})
	require.NoError(t, err)
	burger, err := catalog.AddDish(ctx, &core.Dish{
		CategoryID: category.ID, Name: "Classic Cheeseburger", Price: 900, IsAvailable: true,
	})
	require.NoError(t, err)
	return pizza.ID, burger.ID
}

func TestNewEngineValidation(t *testing.T) {
	_, catalog, vectors := newTestEngine(t)

	normalizer := &multilang.Normalizer{}

	_, err := NewEngine(nil, vectors, normalizer)
	assert.ErrorIs(t, err, ErrCatalogRequired)

	_, err = NewEngine(catalog, nil, normalizer)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)

	_, err = NewEngine(catalog, vectors, nil)
	assert.ErrorIs(t, err, ErrNormalizerRequired)
}

func TestSearchStructured(t *testing.T) {
	engine, catalog, _ := newTestEngine(t)
	pizzaID, burgerID := seedDishes(t, catalog)
	ctx := context.Background()

	max := 1000.0
	ids, err := engine.SearchStructured(ctx, core.DishFilter{MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, []int64{burgerID}, ids)

	// Empty filter returns all available dishes sorted by price then id.
	ids, err = engine.SearchStructured(ctx, core.DishFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{burgerID, pizzaID}, ids)
}

func TestSearchByVectorOrdering(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, map[string]string{"name": "pizza"}))
	require.NoError(t, vectors.Upsert(ctx, "2", []float32{0, 1, 0}, map[string]string{"name": "burger"}))
	require.NoError(t, vectors.Upsert(ctx, "3", []float32{0.9, 0.1, 0}, map[string]string{"name": "calzone"}))

	matches, err := engine.SearchByVector(ctx, []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(1), matches[0].DishID)
	assert.Equal(t, float32(0), matches[0].Distance)
	assert.Equal(t, int64(3), matches[1].DishID)
	assert.Equal(t, "pizza", matches[0].Metadata["name"])
}

func TestSearchByVectorMetadataFilter(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, map[string]string{"restaurant": "Pizza Palace"}))
	require.NoError(t, vectors.Upsert(ctx, "2", []float32{1, 0, 0}, map[string]string{"restaurant": "Burger Heaven"}))

	matches, err := engine.SearchByVector(ctx, []float32{1, 0, 0}, 10, map[string]string{"restaurant": "Burger Heaven"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].DishID)
}

func TestAskReturnsLocalizedLabel(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, nil))

	answer, err := engine.Ask(ctx, "bghit tabaq dyal djaj har", 5)
	require.NoError(t, err)
	assert.Equal(t, "da", answer.Locale)
	assert.Equal(t, multilang.Label("da"), answer.Label)
	require.Len(t, answer.Matches, 1)
	assert.Equal(t, int64(1), answer.Matches[0].DishID)
}

func TestSearchByTextDiscardsLabel(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, nil))
	require.NoError(t, vectors.Upsert(ctx, "2", []float32{0, 1, 0}, nil))

	matches, err := engine.SearchByText(ctx, "spicy chicken", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].DishID)
}

type capturingMonitor struct {
	query     string
	locale    string
	neighbors int
	finished  bool
}

func (m *capturingMonitor) Start(query string)                      { m.query = query }
func (m *capturingMonitor) QueryNormalized(locale string, _ int)    { m.locale = locale }
func (m *capturingMonitor) AfterVectorSearch(ns []storage.Neighbor) { m.neighbors = len(ns) }
func (m *capturingMonitor) Finish(_ []Match)                        { m.finished = true }

func TestAskWithMonitor(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, nil))

	monitor := &capturingMonitor{}
	_, err := engine.AskWithMonitor(ctx, "best pizza in town", 5, monitor)
	require.NoError(t, err)

	assert.Equal(t, "best pizza in town", monitor.query)
	assert.Equal(t, "en", monitor.locale)
	assert.Equal(t, 1, monitor.neighbors)
	assert.True(t, monitor.finished)
}

func TestSimilarToExcludesSelf(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, vectors.Upsert(ctx, "1", []float32{1, 0, 0}, nil))
	require.NoError(t, vectors.Upsert(ctx, "2", []float32{0.9, 0.1, 0}, nil))
	require.NoError(t, vectors.Upsert(ctx, "3", []float32{0, 1, 0}, nil))

	matches, err := engine.SimilarTo(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.NotEqual(t, int64(1), m.DishID)
	}
	// Nearest non-self neighbor first.
	assert.Equal(t, int64(2), matches[0].DishID)
}

func TestSimilarToTruncatesToK(t *testing.T) {
	engine, _, vectors := newTestEngine(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, vectors.Upsert(ctx, id, []float32{1, 0, 0}, nil))
	}

	matches, err := engine.SimilarTo(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSimilarToUnknownDish(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.SimilarTo(context.Background(), 42, 3)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFetchDetails(t *testing.T) {
	engine, catalog, _ := newTestEngine(t)
	pizzaID, burgerID := seedDishes(t, catalog)
	ctx := context.Background()

	details, err := engine.FetchDetails(ctx, []int64{pizzaID, burgerID, 9999})
	require.NoError(t, err)
	require.Len(t, details, 2)
	// Ordered by ascending price; unknown ids skipped.
	assert.Equal(t, "Classic Cheeseburger", details[0].Name)
	assert.Equal(t, "Pizza Palace", details[0].Restaurant)
	assert.Equal(t, "Margherita Pizza", details[1].Name)

	empty, err := engine.FetchDetails(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
