package sqldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/storage"
)

func newCatalog(t *testing.T) storage.Catalog {
	t.Helper()
	cat, err := NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

type fixtureIDs struct {
	margherita   int64
	diavola      int64
	cheeseburger int64
	hiddenDish   int64
}

// seedFixture builds two restaurants covering every visibility rule: an
// unavailable dish, an inactive category, and an inactive menu.
func seedFixture(t *testing.T, cat storage.Catalog) fixtureIDs {
	t.Helper()
	ctx := context.Background()
	var ids fixtureIDs

	pp, err := cat.AddRestaurant(ctx, &core.Restaurant{
		Name:        "Pizza Palace",
		Description: "Authentic Italian pizzeria",
		IsActive:    true,
	})
	require.NoError(t, err)
	ppMenu, err := cat.AddMenu(ctx, &core.Menu{RestaurantID: pp.ID, Name: "Main Menu", IsActive: true})
	require.NoError(t, err)
	pizzas, err := cat.AddCategory(ctx, &core.Category{MenuID: ppMenu.ID, Name: "Pizzas", IsActive: true})
	require.NoError(t, err)

	margherita, err := cat.AddDish(ctx, &core.Dish{
		CategoryID: pizzas.ID, Name: "Margherita Pizza", Price: 1200, IsAvailable: true,
	}, core.Ingredient{Name: "tomato sauce"}, core.Ingredient{Name: "mozzarella"}, core.Ingredient{Name: "basil"})
	require.NoError(t, err)
	ids.margherita = margherita.ID

	diavola, err := cat.AddDish(ctx, &core.Dish{
		CategoryID: pizzas.ID, Name: "Diavola", Description: "Spicy pizza with salami", Price: 1450, IsAvailable: true,
	})
	require.NoError(t, err)
	ids.diavola = diavola.ID

	// Unavailable: must never appear in search results.
	_, err = cat.AddDish(ctx, &core.Dish{
		CategoryID: pizzas.ID, Name: "Quattro Formaggi", Price: 1500, IsAvailable: false,
	})
	require.NoError(t, err)

	bh, err := cat.AddRestaurant(ctx, &core.Restaurant{Name: "Burger Heaven", IsActive: true})
	require.NoError(t, err)
	bhMenu, err := cat.AddMenu(ctx, &core.Menu{RestaurantID: bh.ID, Name: "Main Menu", IsActive: true})
	require.NoError(t, err)
	burgers, err := cat.AddCategory(ctx, &core.Category{MenuID: bhMenu.ID, Name: "Burgers", IsActive: true})
	require.NoError(t, err)

	cheeseburger, err := cat.AddDish(ctx, &core.Dish{
		CategoryID: burgers.ID, Name: "Classic Cheeseburger", Price: 900, IsAvailable: true,
	})
	require.NoError(t, err)
	ids.cheeseburger = cheeseburger.ID

	// Inactive category: its dish is invisible even though available.
	specials, err := cat.AddCategory(ctx, &core.Category{MenuID: bhMenu.ID, Name: "Specials", IsActive: false})
	require.NoError(t, err)
	hidden, err := cat.AddDish(ctx, &core.Dish{
		CategoryID: specials.ID, Name: "Truffle Burger", Price: 1800, IsAvailable: true,
	})
	require.NoError(t, err)
	ids.hiddenDish = hidden.ID

	// Inactive menu: whole subtree invisible.
	offMenu, err := cat.AddMenu(ctx, &core.Menu{RestaurantID: bh.ID, Name: "Winter Menu", IsActive: false})
	require.NoError(t, err)
	winter, err := cat.AddCategory(ctx, &core.Category{MenuID: offMenu.ID, Name: "Soups", IsActive: true})
	require.NoError(t, err)
	_, err = cat.AddDish(ctx, &core.Dish{
		CategoryID: winter.ID, Name: "Pumpkin Soup", Price: 400, IsAvailable: true,
	})
	require.NoError(t, err)

	return ids
}

func TestSearchDishesEmptyFilter(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	got, err := cat.SearchDishes(context.Background(), core.DishFilter{})
	require.NoError(t, err)
	// Only visible dishes, ascending price then id.
	assert.Equal(t, []int64{ids.cheeseburger, ids.margherita, ids.diavola}, got)
}

func TestSearchDishesByName(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	// Case-insensitive substring over name and description.
	got, err := cat.SearchDishes(context.Background(), core.DishFilter{Name: "PIZZA"})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids.margherita, ids.diavola}, got)
}

func TestSearchDishesByPriceBounds(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)
	ctx := context.Background()

	max := 1000.0
	got, err := cat.SearchDishes(ctx, core.DishFilter{MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids.cheeseburger}, got)

	min := 1300.0
	got, err = cat.SearchDishes(ctx, core.DishFilter{MinPrice: &min})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids.diavola}, got)

	// Inclusive bounds.
	exact := 1200.0
	got, err = cat.SearchDishes(ctx, core.DishFilter{MinPrice: &exact, MaxPrice: &exact})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids.margherita}, got)
}

func TestSearchDishesMinAboveMaxIsEmpty(t *testing.T) {
	cat := newCatalog(t)
	seedFixture(t, cat)

	min, max := 2000.0, 100.0
	got, err := cat.SearchDishes(context.Background(), core.DishFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchDishesCombinedCriteria(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	max := 1300.0
	got, err := cat.SearchDishes(context.Background(), core.DishFilter{
		Category:   "pizzas",
		Restaurant: "palace",
		MaxPrice:   &max,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids.margherita}, got)
}

func TestSearchDishesHonorsVisibility(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	// Names of the unavailable, inactive-category, and inactive-menu dishes.
	for _, name := range []string{"Quattro Formaggi", "Truffle Burger", "Pumpkin Soup"} {
		got, err := cat.SearchDishes(context.Background(), core.DishFilter{Name: name})
		require.NoError(t, err)
		assert.Empty(t, got, "dish %q must be invisible", name)
	}
	_ = ids
}

func TestGetDish(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)
	ctx := context.Background()

	dish, err := cat.GetDish(ctx, ids.margherita)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", dish.Name)
	assert.Equal(t, 1200.0, dish.Price)

	_, err = cat.GetDish(ctx, 99999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateDish(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)
	ctx := context.Background()

	dish, err := cat.GetDish(ctx, ids.margherita)
	require.NoError(t, err)
	dish.Price = 1250
	require.NoError(t, cat.UpdateDish(ctx, dish))

	updated, err := cat.GetDish(ctx, ids.margherita)
	require.NoError(t, err)
	assert.Equal(t, 1250.0, updated.Price)

	dish.ID = 99999
	assert.ErrorIs(t, cat.UpdateDish(ctx, dish), storage.ErrNotFound)
}

func TestDeleteDishIdempotent(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)
	ctx := context.Background()

	require.NoError(t, cat.DeleteDish(ctx, ids.diavola))
	_, err := cat.GetDish(ctx, ids.diavola)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Repeat delete is a no-op.
	require.NoError(t, cat.DeleteDish(ctx, ids.diavola))
}

func TestGetDishDetails(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	details, err := cat.GetDishDetails(context.Background(), ids.margherita, ids.cheeseburger, 99999)
	require.NoError(t, err)
	require.Len(t, details, 2)
	// Ascending price; unknown ids skipped.
	assert.Equal(t, "Classic Cheeseburger", details[0].Name)
	assert.Equal(t, "Burger Heaven", details[0].Restaurant)
	assert.Equal(t, "Burgers", details[0].Category)
	assert.Equal(t, "Margherita Pizza", details[1].Name)

	empty, err := cat.GetDishDetails(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetDishProfile(t *testing.T) {
	cat := newCatalog(t)
	ids := seedFixture(t, cat)

	profile, err := cat.GetDishProfile(context.Background(), ids.margherita)
	require.NoError(t, err)
	assert.Equal(t, ids.margherita, profile.DishID)
	assert.Equal(t, "Margherita Pizza", profile.Name)
	assert.Equal(t, "Pizzas", profile.Category)
	assert.Equal(t, "Main Menu", profile.Menu)
	assert.Equal(t, "Pizza Palace", profile.Restaurant)
	assert.Equal(t, "Authentic Italian pizzeria", profile.RestaurantDescription)
	// Ingredients come back sorted by name.
	assert.Equal(t, []string{"basil", "mozzarella", "tomato sauce"}, profile.Ingredients)

	_, err = cat.GetDishProfile(context.Background(), 99999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListDishIDs(t *testing.T) {
	cat := newCatalog(t)
	seedFixture(t, cat)

	ids, err := cat.ListDishIDs(context.Background())
	require.NoError(t, err)
	// All dishes, visible or not, ascending.
	assert.Len(t, ids, 6)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestAddDishValidates(t *testing.T) {
	cat := newCatalog(t)

	_, err := cat.AddDish(context.Background(), &core.Dish{Name: "", CategoryID: 1})
	assert.ErrorIs(t, err, core.ErrInvalidDish)
}
