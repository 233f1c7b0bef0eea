package core

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Restaurant is the root of the menu hierarchy. A restaurant owns zero or
// more menus.
type Restaurant struct {
	ID          int64
	Name        string
	Description string
	Phone       string
	Email       string
	IsActive    bool
}

// Menu belongs to a restaurant and owns zero or more categories.
type Menu struct {
	ID           int64
	RestaurantID int64
	Name         string
	IsActive     bool
	DisplayOrder int
}

// Category belongs to a menu and owns zero or more dishes.
type Category struct {
	ID           int64
	MenuID       int64
	Name         string
	IsActive     bool
	DisplayOrder int
}

// Dish is the unit of search, the leaf of the hierarchy. Its ID doubles as
// the vector-store record id in decimal string form (see VectorID).
type Dish struct {
	ID              int64
	CategoryID      int64
	Name            string
	Description     string
	Price           float64
	IsAvailable     bool
	Quantity        int
	PrepTimeMinutes int
	Popularity      float64
	DisplayOrder    int
}

// Ingredient associates a dish with a named ingredient and a quantity.
type Ingredient struct {
	DishID   int64
	Name     string
	Quantity string
}

// VectorID returns the dish id in the string form used by the vector store.
func (d *Dish) VectorID() string {
	return strconv.FormatInt(d.ID, 10)
}

// DishProfile is the dish-shaped record the embedding generator consumes:
// the dish joined with its category, menu, and restaurant context.
type DishProfile struct {
	DishID                int64
	Name                  string
	Ingredients           []string
	Price                 float64
	Popularity            float64
	Category              string
	Menu                  string
	Restaurant            string
	RestaurantDescription string
}

// VectorID returns the dish id in the string form used by the vector store.
func (p *DishProfile) VectorID() string {
	return strconv.FormatInt(p.DishID, 10)
}

// DishDetail is the denormalized read model returned by detail fetches.
type DishDetail struct {
	Dish
	Category     string
	CategoryID   int64
	Restaurant   string
	RestaurantID int64
}

// DishFilter holds the optional structured search criteria. Zero values
// impose no constraint; all supplied criteria are AND-combined.
type DishFilter struct {
	// Name matches dish name or description, case-insensitive substring.
	Name string
	// Category matches category name, case-insensitive substring.
	Category string
	// Restaurant matches restaurant name or description, case-insensitive substring.
	Restaurant string
	// MinPrice and MaxPrice are inclusive bounds; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64
}

// IsEmpty reports whether the filter imposes no constraints beyond the
// base visibility predicate.
func (f *DishFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.Restaurant == "" &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// Fingerprint returns a stable hex digest of text using BLAKE2b.
// Identical embedding text always produces an identical fingerprint, which
// lets the indexer detect stale vector-store entries without re-embedding.
func Fingerprint(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// JoinIngredients renders an ingredient list in the fixed form used by the
// embedding text. The separator is part of the embedding contract.
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, ", ")
}
