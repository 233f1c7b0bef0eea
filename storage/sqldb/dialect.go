package sqldb

import "fmt"

// Dialect captures the differences between supported SQL targets. Predicate
// construction is dialect-neutral; only rendering consults the dialect, and
// the two targets differ only in placeholder token, case-insensitive match
// operator, and DDL id-column syntax.
type Dialect interface {
	// Name identifies the dialect ("sqlite" or "postgres").
	Name() string

	// DriverName is the database/sql driver to open connections with.
	DriverName() string

	// Placeholder renders the parameter placeholder for 1-based position n.
	Placeholder(n int) string

	// LikeOp is the case-insensitive substring-match operator.
	LikeOp() string

	// AutoIDColumn is the DDL fragment for an auto-assigned integer primary key.
	AutoIDColumn() string

	// ReturningID is the clause appended to INSERTs to read back the
	// generated id, or "" when the driver reports it via LastInsertId.
	ReturningID() string
}

type sqliteDialect struct{}

// SQLite returns the dialect for modernc.org/sqlite. Its LIKE operator folds
// ASCII case by default, which is the engine's case-insensitive match.
func SQLite() Dialect { return sqliteDialect{} }

func (sqliteDialect) Name() string          { return "sqlite" }
func (sqliteDialect) DriverName() string    { return "sqlite" }
func (sqliteDialect) Placeholder(int) string { return "?" }
func (sqliteDialect) LikeOp() string        { return "LIKE" }
func (sqliteDialect) AutoIDColumn() string  { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (sqliteDialect) ReturningID() string   { return "" }

type postgresDialect struct{}

// Postgres returns the dialect for lib/pq.
func Postgres() Dialect { return postgresDialect{} }

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "postgres" }
func (postgresDialect) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
func (postgresDialect) LikeOp() string       { return "ILIKE" }
func (postgresDialect) AutoIDColumn() string { return "BIGSERIAL PRIMARY KEY" }
func (postgresDialect) ReturningID() string  { return " RETURNING id" }
