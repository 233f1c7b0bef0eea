package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tavolo/dishsearch/core"
)

func TestCompileEmptyFilter(t *testing.T) {
	frags := compileFilter(core.DishFilter{})

	where, args := renderWhere(frags, SQLite(), 1)
	assert.Equal(t, "WHERE "+visibilityPredicate, where)
	assert.Empty(t, args)
}

func TestRenderWhereSQLite(t *testing.T) {
	min, max := 500.0, 1500.0
	frags := compileFilter(core.DishFilter{
		Name:     "pizza",
		MinPrice: &min,
		MaxPrice: &max,
	})

	where, args := renderWhere(frags, SQLite(), 1)
	assert.Equal(t,
		"WHERE "+visibilityPredicate+
			" AND (d.name LIKE ? OR d.description LIKE ?)"+
			" AND d.price >= ? AND d.price <= ?",
		where)
	assert.Equal(t, []any{"%pizza%", "%pizza%", 500.0, 1500.0}, args)
}

func TestRenderWherePostgres(t *testing.T) {
	frags := compileFilter(core.DishFilter{
		Category:   "burgers",
		Restaurant: "heaven",
	})

	where, args := renderWhere(frags, Postgres(), 1)
	assert.Equal(t,
		"WHERE "+visibilityPredicate+
			" AND mc.name ILIKE $1"+
			" AND (r.name ILIKE $2 OR r.description ILIKE $3)",
		where)
	assert.Equal(t, []any{"%burgers%", "%heaven%", "%heaven%"}, args)
}

func TestRenderWhereStartIndex(t *testing.T) {
	min := 100.0
	frags := compileFilter(core.DishFilter{MinPrice: &min})

	where, args := renderWhere(frags, Postgres(), 3)
	assert.Equal(t, "WHERE "+visibilityPredicate+" AND d.price >= $3", where)
	assert.Len(t, args, 1)
}

func TestRenderIDList(t *testing.T) {
	assert.Equal(t, "?,?,?", renderIDList(SQLite(), 1, 3))
	assert.Equal(t, "$2,$3", renderIDList(Postgres(), 2, 2))
}

func TestDegenerateBoundsCompileAsIs(t *testing.T) {
	// min > max compiles to an unsatisfiable conjunction, not an error.
	min, max := 2000.0, 100.0
	frags := compileFilter(core.DishFilter{MinPrice: &min, MaxPrice: &max})

	where, args := renderWhere(frags, SQLite(), 1)
	assert.Contains(t, where, "d.price >= ?")
	assert.Contains(t, where, "d.price <= ?")
	assert.Equal(t, []any{2000.0, 100.0}, args)
}
