package boltstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"padel-catalog/internal/catalog/model"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_EmptyDatabase(t *testing.T) {
	s, _ := newTestStore(t)
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())

	at, err := s.SavedAt()
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestStore_RoundTripSurvivesReopen(t *testing.T) {
	s, path := newTestStore(t)
	d := model.NewDocument()
	d.Put(&model.Racket{ID: "b", Brand: "Babolat", Model: "Technical Viper"})
	d.Put(&model.Racket{ID: "a", Brand: "Adidas", Model: "Adipower"})
	require.NoError(t, s.Save(context.Background(), d))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	doc, err := s2.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, doc.Slugs())

	at, err := s2.SavedAt()
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestStore_MalformedValue(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCatalog)
		if err != nil {
			return err
		}
		return b.Put(keyDocument, []byte("[]"))
	}))

	_, err := s.Load(context.Background())
	assert.True(t, errors.Is(err, model.ErrMalformedDocument))
}
