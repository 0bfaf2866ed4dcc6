// Package storage picks the catalog persister from configuration.
package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"padel-catalog/internal/catalog/service"
	"padel-catalog/internal/storage/boltstore"
	"padel-catalog/internal/storage/filestore"
)

var ErrUnknownBackend = errors.New("unknown CATALOG_BACKEND (use file or bolt)")

type Config struct {
	Backend string // file | bolt
	Path    string
}

// Result carries the persister and, for backends holding a handle, its closer.
type Result struct {
	Persister service.Persister
	Closer    io.Closer
}

func (r Result) Close() error {
	if r.Closer == nil {
		return nil
	}
	return r.Closer.Close()
}

func Open(cfg Config) (Result, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "file"
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return Result{}, errors.New("CATALOG_PATH is required")
	}

	switch backend {
	case "file", "json":
		return Result{Persister: filestore.New(cfg.Path)}, nil

	case "bolt", "bbolt":
		s, err := boltstore.Open(cfg.Path)
		if err != nil {
			return Result{}, err
		}
		return Result{Persister: s, Closer: s}, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
