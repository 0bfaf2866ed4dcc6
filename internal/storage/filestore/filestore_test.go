package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-catalog/internal/catalog/model"
)

func sampleDoc() *model.Document {
	d := model.NewDocument()
	d.Put(&model.Racket{ID: "nox-at10", Brand: "Nox", Model: "AT10 Genius 2024", Specs: map[string]string{"Forma": "Lágrima"},
		Prices: []model.PriceEntry{{Store: "padelnuestro", Price: 199.95, URL: "https://p/a?x=1&y=2", Currency: "EUR", LastUpdated: "2025-03-01T10:00:00Z"}}})
	d.Put(&model.Racket{ID: "adidas-metalbone", Brand: "Adidas", Model: "Metalbone 3.3", Specs: map[string]string{}})
	return d
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "catalog.json"))
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catalog.json")
	s := New(path)
	require.NoError(t, s.Save(context.Background(), sampleDoc()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Lágrima")
	assert.Contains(t, string(raw), "https://p/a?x=1&y=2")

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nox-at10", "adidas-metalbone"}, doc.Slugs())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestStore_SaveReplacesWholeDocument(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "catalog.json"))
	require.NoError(t, s.Save(context.Background(), sampleDoc()))

	d := model.NewDocument()
	d.Put(&model.Racket{ID: "only", Brand: "Head", Model: "Only"})
	require.NoError(t, s.Save(context.Background(), d))

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, doc.Slugs())
}

func TestStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedDocument))
}

func TestStore_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	doc, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(filepath.Join(t.TempDir(), "catalog.json"))
	assert.ErrorIs(t, s.Save(ctx, sampleDoc()), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
