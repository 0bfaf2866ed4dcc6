package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/service"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagBackend, flagPath, flagThreshold, flagJSON = "", "", 0, false
	importStore, showBrand = "", ""
	priceStore, priceValue, priceOriginal, priceURL, priceCurrency = "", -1, 0, "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOG_FILE", filepath.Join(dir, "logs", "ctl.log"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CATALOG_BACKEND", "")
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("MATCH_THRESHOLD", "")
	return dir
}

func TestImportShowPrice(t *testing.T) {
	dir := setupEnv(t)
	feed := filepath.Join(dir, "padelnuestro__today.csv")
	require.NoError(t, os.WriteFile(feed, []byte(
		"url,nombre,marca,precio\n"+
			"https://pn/1,Pala StarVie Metheora Dual 2024,StarVie,219.95\n"+
			"https://pn/2,Pala Kuikma Hybrid Hard,Kuikma,59.99\n"), 0o644))
	catalog := filepath.Join(dir, "catalog.db")

	out, err := run(t, "import", "--backend", "bolt", "--catalog", catalog, feed)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 created")
	assert.Contains(t, out, "catalog: 2 rackets")

	out, err = run(t, "show", "--backend", "bolt", "--catalog", catalog, "--json")
	require.NoError(t, err)
	var list []model.Racket
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	slug := list[0].ID

	out, err = run(t, "price", "--backend", "bolt", "--catalog", catalog, slug,
		"--store", "amazon", "--price", "199.5", "--currency", "eur")
	require.NoError(t, err, out)
	assert.Contains(t, out, "amazon 199.50 EUR")

	out, err = run(t, "show", "--backend", "bolt", "--catalog", catalog, slug)
	require.NoError(t, err)
	assert.Contains(t, out, "padelnuestro 219.95 EUR")
	assert.Contains(t, out, "amazon 199.50 EUR")

	out, err = run(t, "show", "--backend", "bolt", "--catalog", catalog, "--brand", "kuikma")
	require.NoError(t, err)
	assert.Contains(t, out, "Kuikma")
	assert.NotContains(t, out, "Metheora")

	out, err = run(t, "price", "--backend", "bolt", "--catalog", catalog, " "+slug+" ",
		"--store", " amazon ", "--price", "189")
	require.NoError(t, err, out)
	assert.Contains(t, out, "amazon 189.00 EUR")

	_, err = run(t, "price", "--backend", "bolt", "--catalog", catalog, slug, "--store", "  ", "--price", "1")
	assert.Error(t, err)

	_, err = run(t, "price", "--backend", "bolt", "--catalog", catalog, "missing", "--store", "amazon", "--price", "1")
	assert.Error(t, err)
}

func TestImport_StoreFlagOverridesFileName(t *testing.T) {
	dir := setupEnv(t)
	feed := filepath.Join(dir, "nostoreprefix.json")
	require.NoError(t, os.WriteFile(feed, []byte(`[{"url":"https://a/1","name":"Head Extreme Pro 2024","brand":"Head","price":210}]`), 0o644))
	catalog := filepath.Join(dir, "catalog.json")

	_, err := run(t, "import", "--catalog", catalog, feed)
	assert.Error(t, err)

	out, err := run(t, "import", "--catalog", catalog, "--store", "amazon", "--json", feed)
	require.NoError(t, err, out)
	assert.Contains(t, out, `"Store": "amazon"`)
}

func TestCompare(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "compare", "--json", "Pala Nox AT10 Genius 2024", "Nox AT10 Genius 2024")
	require.NoError(t, err)
	var c service.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.True(t, c.WouldMatch)

	out, err = run(t, "compare", "Nox AT10 Genius 2024", "Nox AT10 Genius 2025")
	require.NoError(t, err)
	assert.Contains(t, out, "incompatible")
}
