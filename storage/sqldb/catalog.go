package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tavolo/dishsearch/core"
	"github.com/tavolo/dishsearch/storage"
)

// catalog implements storage.Catalog over database/sql.
type catalog struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Option configures a catalog.
type Option func(*catalog)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *catalog) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// Open opens a catalog for the given dialect and DSN and ensures the schema
// exists. Returns storage.Catalog to keep callers decoupled from the SQL
// backing.
func Open(dialect Dialect, dsn string, opts ...Option) (storage.Catalog, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	cat, err := New(db, dialect, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return cat, nil
}

// New wraps an existing database handle. The caller keeps ownership of db
// configuration (pool sizing, lifetimes); Close closes the handle.
func New(db *sql.DB, dialect Dialect, opts ...Option) (storage.Catalog, error) {
	c := &catalog{
		db:      db,
		dialect: dialect,
		logger:  slog.Default().With("component", "sql-catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := ensureSchema(db, dialect); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *catalog) Close() error {
	return c.db.Close()
}

// insertReturningID runs an INSERT and reports the generated id, bridging
// the two drivers: lib/pq only supports RETURNING, modernc.org/sqlite only
// supports LastInsertId.
func (c *catalog) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if ret := c.dialect.ReturningID(); ret != "" {
		var id int64
		if err := c.db.QueryRowContext(ctx, query+ret, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (c *catalog) AddRestaurant(ctx context.Context, r *core.Restaurant) (*core.Restaurant, error) {
	if err := core.ValidateRestaurant(r); err != nil {
		return nil, err
	}
	d := c.dialect
	query := fmt.Sprintf(
		"INSERT INTO restaurants (name, description, phone, email, is_active) VALUES (%s, %s, %s, %s, %s)",
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5))
	id, err := c.insertReturningID(ctx, query, r.Name, r.Description, r.Phone, r.Email, r.IsActive)
	if err != nil {
		return nil, err
	}
	r.ID = id
	return r, nil
}

func (c *catalog) AddMenu(ctx context.Context, m *core.Menu) (*core.Menu, error) {
	if err := core.ValidateMenu(m); err != nil {
		return nil, err
	}
	d := c.dialect
	query := fmt.Sprintf(
		"INSERT INTO menus (restaurant_id, name, is_active, display_order) VALUES (%s, %s, %s, %s)",
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4))
	id, err := c.insertReturningID(ctx, query, m.RestaurantID, m.Name, m.IsActive, m.DisplayOrder)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (c *catalog) AddCategory(ctx context.Context, cat *core.Category) (*core.Category, error) {
	if err := core.ValidateCategory(cat); err != nil {
		return nil, err
	}
	d := c.dialect
	query := fmt.Sprintf(
		"INSERT INTO menu_categories (menu_id, name, is_active, display_order) VALUES (%s, %s, %s, %s)",
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4))
	id, err := c.insertReturningID(ctx, query, cat.MenuID, cat.Name, cat.IsActive, cat.DisplayOrder)
	if err != nil {
		return nil, err
	}
	cat.ID = id
	return cat, nil
}

func (c *catalog) AddDish(ctx context.Context, dish *core.Dish, ingredients ...core.Ingredient) (*core.Dish, error) {
	if err := core.ValidateDish(dish); err != nil {
		return nil, err
	}
	d := c.dialect
	query := fmt.Sprintf(
		`INSERT INTO dishes (category_id, name, description, price, is_available, quantity, prep_time_minutes, popularity, display_order)
		 VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5),
		d.Placeholder(6), d.Placeholder(7), d.Placeholder(8), d.Placeholder(9))
	id, err := c.insertReturningID(ctx, query,
		dish.CategoryID, dish.Name, dish.Description, dish.Price, dish.IsAvailable,
		dish.Quantity, dish.PrepTimeMinutes, dish.Popularity, dish.DisplayOrder)
	if err != nil {
		return nil, err
	}
	dish.ID = id

	ingQuery := fmt.Sprintf(
		"INSERT INTO ingredients (dish_id, name, quantity) VALUES (%s, %s, %s)",
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3))
	for _, ing := range ingredients {
		if _, err := c.db.ExecContext(ctx, ingQuery, id, ing.Name, ing.Quantity); err != nil {
			return nil, err
		}
	}
	return dish, nil
}

func (c *catalog) UpdateDish(ctx context.Context, dish *core.Dish) error {
	if err := core.ValidateDish(dish); err != nil {
		return err
	}
	d := c.dialect
	query := fmt.Sprintf(
		`UPDATE dishes SET category_id = %s, name = %s, description = %s, price = %s,
		 is_available = %s, quantity = %s, prep_time_minutes = %s, popularity = %s, display_order = %s
		 WHERE id = %s`,
		d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5),
		d.Placeholder(6), d.Placeholder(7), d.Placeholder(8), d.Placeholder(9), d.Placeholder(10))
	res, err := c.db.ExecContext(ctx, query,
		dish.CategoryID, dish.Name, dish.Description, dish.Price, dish.IsAvailable,
		dish.Quantity, dish.PrepTimeMinutes, dish.Popularity, dish.DisplayOrder, dish.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: dish %d", storage.ErrNotFound, dish.ID)
	}
	return nil
}

func (c *catalog) DeleteDish(ctx context.Context, id int64) error {
	d := c.dialect
	if _, err := c.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM ingredients WHERE dish_id = %s", d.Placeholder(1)), id); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM dishes WHERE id = %s", d.Placeholder(1)), id)
	return err
}

func (c *catalog) GetDish(ctx context.Context, id int64) (*core.Dish, error) {
	d := c.dialect
	query := fmt.Sprintf(
		`SELECT id, category_id, name, description, price, is_available, quantity, prep_time_minutes, popularity, display_order
		 FROM dishes WHERE id = %s`, d.Placeholder(1))
	var dish core.Dish
	err := c.db.QueryRowContext(ctx, query, id).Scan(
		&dish.ID, &dish.CategoryID, &dish.Name, &dish.Description, &dish.Price,
		&dish.IsAvailable, &dish.Quantity, &dish.PrepTimeMinutes, &dish.Popularity, &dish.DisplayOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dish %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// dishJoin is the relational join Dish⋈Category⋈Menu⋈Restaurant that every
// search and detail query runs over.
const dishJoin = `FROM dishes d
JOIN menu_categories mc ON d.category_id = mc.id
JOIN menus m ON mc.menu_id = m.id
JOIN restaurants r ON m.restaurant_id = r.id`

func (c *catalog) SearchDishes(ctx context.Context, filter core.DishFilter) ([]int64, error) {
	frags := compileFilter(filter)
	where, args := renderWhere(frags, c.dialect, 1)

	// DISTINCT pairs with d.price so ordering expressions stay in the
	// projection, as Postgres requires.
	query := "SELECT DISTINCT d.id, d.price\n" + dishJoin + "\n" + where +
		"\nORDER BY d.price ASC, d.id ASC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	seen := make(map[int64]bool)
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		// The join structurally cannot repeat a dish, but dedup anyway.
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *catalog) GetDishDetails(ctx context.Context, ids ...int64) ([]*core.DishDetail, error) {
	if len(ids) == 0 {
		return []*core.DishDetail{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT d.id, d.category_id, d.name, d.description, d.price, d.is_available,
		        d.quantity, d.prep_time_minutes, d.popularity, d.display_order,
		        mc.name, r.name, r.id
		 %s
		 WHERE d.id IN (%s)
		 ORDER BY d.price ASC, d.id ASC`,
		dishJoin, renderIDList(c.dialect, 1, len(ids)))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*core.DishDetail
	for rows.Next() {
		var det core.DishDetail
		if err := rows.Scan(
			&det.Dish.ID, &det.Dish.CategoryID, &det.Dish.Name, &det.Dish.Description,
			&det.Dish.Price, &det.Dish.IsAvailable, &det.Dish.Quantity,
			&det.Dish.PrepTimeMinutes, &det.Dish.Popularity, &det.Dish.DisplayOrder,
			&det.Category, &det.Restaurant, &det.RestaurantID); err != nil {
			return nil, err
		}
		det.CategoryID = det.Dish.CategoryID
		details = append(details, &det)
	}
	return details, rows.Err()
}

func (c *catalog) GetDishProfile(ctx context.Context, id int64) (*core.DishProfile, error) {
	query := fmt.Sprintf(
		`SELECT d.id, d.name, d.price, d.popularity, mc.name, m.name, r.name, r.description
		 %s
		 WHERE d.id = %s`, dishJoin, c.dialect.Placeholder(1))

	var p core.DishProfile
	err := c.db.QueryRowContext(ctx, query, id).Scan(
		&p.DishID, &p.Name, &p.Price, &p.Popularity,
		&p.Category, &p.Menu, &p.Restaurant, &p.RestaurantDescription)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dish %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	ingQuery := fmt.Sprintf(
		"SELECT name FROM ingredients WHERE dish_id = %s ORDER BY name", c.dialect.Placeholder(1))
	rows, err := c.db.QueryContext(ctx, ingQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		p.Ingredients = append(p.Ingredients, name)
	}
	return &p, rows.Err()
}

func (c *catalog) ListDishIDs(ctx context.Context) ([]int64, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT id FROM dishes ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
