package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local_inventory.db", cfg.DBPath)
	assert.Equal(t, "products.csv", cfg.ProductsFile)
	assert.Equal(t, "requirements.csv", cfg.RequirementsFile)
	assert.Equal(t, "category_rules.csv", cfg.RulesFile)
	assert.Equal(t, EncodingUTF8, cfg.CSVEncoding)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUOTER_DB_PATH", "/tmp/other.db")
	t.Setenv("QUOTER_CSV_ENCODING", "SJIS")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, EncodingShiftJIS, cfg.CSVEncoding)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUOTER_PRODUCTS_FILE=data/products.xlsx\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUOTER_PRODUCTS_FILE") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/products.xlsx", cfg.ProductsFile)
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoad_BadEncoding(t *testing.T) {
	t.Setenv("QUOTER_CSV_ENCODING", "latin-9")

	_, err := Load("")
	require.Error(t, err)
}
