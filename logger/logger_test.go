package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestErrorCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: ParseLevel("debug"), Format: "json", Output: buf})

	ctx := log.With(context.Background(), "quote_ref", "q-123")
	ctx = log.With(ctx, "product_id", "P1")
	log.Error(ctx, "quote failed", errors.New("boom"))

	assert.Contains(t, buf.String(), `"quote_ref":"q-123"`)
	assert.Contains(t, buf.String(), `"product_id":"P1"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLevelFiltersEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: zerolog.WarnLevel, Format: "json", Output: buf})

	log.Debug(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRowSkipped(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Format: "json", Output: buf})

	log.RowSkipped(context.Background(), "products.csv", 7, errors.New("Price must be at least 0"))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"source":"products.csv"`)
	assert.Contains(t, buf.String(), `"line":7`)
	assert.Contains(t, buf.String(), `"error":"Price must be at least 0"`)
}

func TestSyncedConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Format: "console", Output: buf})

	log.Synced(context.Background(), 3, 2, 1, 0)

	assert.Contains(t, buf.String(), "database synchronized with source files")
	assert.Contains(t, buf.String(), "products=3")
	assert.Contains(t, buf.String(), "rules=1")
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}
