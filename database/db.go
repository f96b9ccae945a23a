package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Table names the quoting logic depends on.
const (
	TableProducts     = "products"
	TableRequirements = "requirements"
	TableRules        = "rules"
)

// ExpectedTables lists the tables a usable cache must contain.
var ExpectedTables = []string{TableProducts, TableRequirements, TableRules}

// expectedColumns are the columns each table needs. A cache written by an older tool may hold
// tables with the right names but a different layout.
var expectedColumns = map[string][]string{
	TableProducts: {
		"id", "category", "sub_category", "name", "color", "unit",
		"price", "inventory", "incoming", "restock_date", "position",
	},
	TableRequirements: {"category", "required_accessory", "quantity_multiplier", "position"},
	TableRules:        {"category", "color_matching_type", "position"},
}

type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Open connects to the sqlite cache file, creating it if needed.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations. Tables left in an unknown layout are dropped
// and rebuilt first; their rows are replaced by the next load anyway.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	stale, err := StaleTables(ctx, db)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		if err := resetSchema(ctx, db); err != nil {
			return err
		}
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// StaleTables returns the expected tables that exist but lack one or more required columns.
func StaleTables(ctx context.Context, dbtx DBTX) ([]string, error) {
	var stale []string
	for _, table := range ExpectedTables {
		var cols []string
		if err := dbtx.SelectContext(ctx, &cols, `SELECT name FROM pragma_table_info(?)`, table); err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
		}
		if len(cols) == 0 {
			continue
		}
		have := make(map[string]bool, len(cols))
		for _, c := range cols {
			have[strings.ToLower(c)] = true
		}
		for _, want := range expectedColumns[table] {
			if !have[want] {
				stale = append(stale, table)
				break
			}
		}
	}
	return stale, nil
}

// resetSchema drops the cache tables and the migration bookkeeping so Up recreates them.
func resetSchema(ctx context.Context, db *sqlx.DB) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema reset: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	for _, table := range append([]string{goose.TableName()}, ExpectedTables...) {
		if _, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS "`+table+`"`); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}
