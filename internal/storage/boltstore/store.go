// Package boltstore persists the catalog in a bbolt database. The whole
// document is one JSON value under the "catalog" bucket; a write is a single
// transaction, so readers never see half a catalog.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/storage/filestore"
)

// Bucket keys
var (
	bucketCatalog = []byte("catalog")
	keyDocument   = []byte("document")
	keySavedAt    = []byte("saved_at")
)

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns an empty document when nothing was saved yet.
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalog)
		if b == nil {
			return nil
		}
		// bbolt slices are only valid inside the tx
		if v := b.Get(keyDocument); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt view: %w", err)
	}

	doc := model.NewDocument()
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: bbolt %s: %v", model.ErrMalformedDocument, keyDocument, err)
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := filestore.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketCatalog)
		if err != nil {
			return err
		}
		if err := bkt.Put(keyDocument, b); err != nil {
			return err
		}
		return bkt.Put(keySavedAt, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

// SavedAt reports when the document was last written, zero if never.
func (s *Store) SavedAt() (time.Time, error) {
	var out time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalog)
		if b == nil {
			return nil
		}
		v := b.Get(keySavedAt)
		if v == nil {
			return nil
		}
		t, err := time.Parse(time.RFC3339, string(v))
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}
