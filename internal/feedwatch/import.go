// Package feedwatch imports store feed files into the catalog, once or as
// they land in a watched directory.
package feedwatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/service"
	"padel-catalog/internal/fileio"
)

// storeSep separates the store id from the rest of a feed file name:
// "padelnuestro__2025-03-01.csv" belongs to store "padelnuestro".
const storeSep = "__"

var ErrNoStore = errors.New("feed file name has no store prefix (want <store>__<name>.<ext>)")

// Resolver is the part of the catalog an import needs.
type Resolver interface {
	ResolveBatch(ctx context.Context, products []model.ScrapedProduct, store string) ([]service.Result, error)
}

// Report summarizes one imported file.
type Report struct {
	File     string
	Store    string
	Rows     int
	Skipped  []fileio.Skipped
	Created  int
	Merged   int
	Excluded int
	Invalid  int
}

type Importer struct {
	Catalog Resolver
	Log     zerolog.Logger
}

// StoreFromFilename returns the store prefix of a feed file name.
func StoreFromFilename(path string) (string, error) {
	base := filepath.Base(path)
	i := strings.Index(base, storeSep)
	if i <= 0 {
		return "", fmt.Errorf("%w: %s", ErrNoStore, base)
	}
	return strings.ToLower(base[:i]), nil
}

// ImportFile reads path as a feed of store. An empty store is taken from the file name.
func (im Importer) ImportFile(ctx context.Context, path, store string) (Report, error) {
	if store == "" {
		s, err := StoreFromFilename(path)
		if err != nil {
			return Report{}, err
		}
		store = s
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	feed, err := fileio.ReadFeed(f, path)
	if err != nil {
		return Report{}, fmt.Errorf("read feed %s: %w", filepath.Base(path), err)
	}
	rep := Report{
		File:    path,
		Store:   store,
		Rows:    len(feed.Products) + len(feed.Skipped),
		Skipped: feed.Skipped,
	}
	for _, s := range feed.Skipped {
		im.Log.Warn().Str("file", filepath.Base(path)).Int("row", s.Row).Str("reason", s.Reason).Msg("feed row skipped")
	}

	results, err := im.Catalog.ResolveBatch(ctx, feed.Products, store)
	for _, r := range results {
		switch r.Action {
		case service.ActionCreated:
			rep.Created++
		case service.ActionMerged:
			rep.Merged++
		case service.ActionExcluded:
			rep.Excluded++
		case service.ActionInvalid:
			rep.Invalid++
		}
	}
	if err != nil {
		return rep, err
	}

	im.Log.Info().
		Str("file", filepath.Base(path)).
		Str("store", store).
		Int("rows", rep.Rows).
		Int("created", rep.Created).
		Int("merged", rep.Merged).
		Int("excluded", rep.Excluded).
		Int("invalid", rep.Invalid).
		Msg("feed imported")
	return rep, nil
}
