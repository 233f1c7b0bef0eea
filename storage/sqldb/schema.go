package sqldb

import (
	"database/sql"
	"fmt"
)

// schemaStatements returns the DDL for the dialect. Only the id-column
// syntax differs between targets.
func schemaStatements(d Dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS restaurants (
			id %s,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`, d.AutoIDColumn()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS menus (
			id %s,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			display_order INTEGER NOT NULL DEFAULT 0
		)`, d.AutoIDColumn()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS menu_categories (
			id %s,
			menu_id BIGINT NOT NULL REFERENCES menus(id),
			name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			display_order INTEGER NOT NULL DEFAULT 0
		)`, d.AutoIDColumn()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS dishes (
			id %s,
			category_id BIGINT NOT NULL REFERENCES menu_categories(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			quantity INTEGER NOT NULL DEFAULT 0,
			prep_time_minutes INTEGER NOT NULL DEFAULT 0,
			popularity REAL NOT NULL DEFAULT 0,
			display_order INTEGER NOT NULL DEFAULT 0
		)`, d.AutoIDColumn()),
		`CREATE TABLE IF NOT EXISTS ingredients (
			dish_id BIGINT NOT NULL,
			name TEXT NOT NULL,
			quantity TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_dishes_price ON dishes(price)`,
		`CREATE INDEX IF NOT EXISTS idx_ingredients_dish ON ingredients(dish_id)`,
	}
}

func ensureSchema(db *sql.DB, d Dialect) error {
	for _, stmt := range schemaStatements(d) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
