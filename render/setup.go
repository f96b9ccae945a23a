package render

import (
	"fmt"
	"io"
	"strings"

	"quoter/database"
)

// SetupReport prints the startup environment check.
func SetupReport(w io.Writer, r database.SetupReport) error {
	var sb strings.Builder
	sb.WriteString("--- Environment Check ---\n")
	if !r.Found {
		sb.WriteString(fmt.Sprintf("%s: Not found\n", r.Path))
		_, err := io.WriteString(w, sb.String())
		return err
	}
	sb.WriteString(fmt.Sprintf("%s: Found\n", r.Path))
	switch {
	case len(r.Missing) > 0:
		sb.WriteString("Database: Missing tables\n")
		sb.WriteString(fmt.Sprintf("Database is missing the below table(s): %s\n", strings.Join(r.Missing, ", ")))
	case len(r.Stale) > 0:
		sb.WriteString("Database: All tables found\n")
		sb.WriteString(fmt.Sprintf("Database Integrity: Outdated columns in %s\n", strings.Join(r.Stale, ", ")))
	default:
		sb.WriteString("Database: All tables found\n")
		sb.WriteString("Database Integrity: Good\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
