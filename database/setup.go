package database

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"quoter/apperr"
)

// SetupReport is the outcome of VerifySetup.
type SetupReport struct {
	Path    string
	Found   bool
	Missing []string
	// Stale holds tables that exist with an older column layout.
	Stale []string
}

func (r SetupReport) OK() bool {
	return r.Found && len(r.Missing) == 0 && len(r.Stale) == 0
}

// Err is nil for a healthy cache and a SCHEMA_MISMATCH error otherwise.
func (r SetupReport) Err() error {
	if !r.Found {
		return apperr.Newf(apperr.CodeSchemaMismatch, "%s not found", r.Path)
	}
	if len(r.Missing) > 0 {
		return apperr.Newf(apperr.CodeSchemaMismatch, "database is missing table(s): %s", strings.Join(r.Missing, ", "))
	}
	if len(r.Stale) > 0 {
		return apperr.Newf(apperr.CodeSchemaMismatch, "database has outdated table(s): %s", strings.Join(r.Stale, ", "))
	}
	return nil
}

// VerifySetup checks that the cache file exists and holds every expected table.
// It opens the file read-only and never creates it.
func VerifySetup(ctx context.Context, path string) (SetupReport, error) {
	report := SetupReport{Path: path}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		return report, apperr.Wrap(apperr.CodeDataAccess, err, "stat "+path)
	}
	report.Found = true

	db, err := sqlx.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return report, apperr.Wrap(apperr.CodeDataAccess, err, "open "+path)
	}
	defer db.Close()

	tables, err := ListTables(ctx, db)
	if err != nil {
		return report, apperr.Wrap(apperr.CodeDataAccess, err, "database verification error")
	}

	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}
	for _, want := range ExpectedTables {
		if !present[want] {
			report.Missing = append(report.Missing, want)
		}
	}

	if report.Stale, err = StaleTables(ctx, db); err != nil {
		return report, apperr.Wrap(apperr.CodeDataAccess, err, "database verification error")
	}
	return report, nil
}

func ListTables(ctx context.Context, dbtx DBTX) ([]string, error) {
	var tables []string
	const q = `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`
	if err := dbtx.SelectContext(ctx, &tables, q); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}
