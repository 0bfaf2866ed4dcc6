package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-catalog/internal/storage/boltstore"
	"padel-catalog/internal/storage/filestore"
)

func TestOpen_File(t *testing.T) {
	res, err := Open(Config{Path: filepath.Join(t.TempDir(), "c.json")})
	require.NoError(t, err)
	defer res.Close()
	assert.IsType(t, &filestore.Store{}, res.Persister)
	assert.Nil(t, res.Closer)
}

func TestOpen_Bolt(t *testing.T) {
	res, err := Open(Config{Backend: "BOLT", Path: filepath.Join(t.TempDir(), "c.db")})
	require.NoError(t, err)
	defer res.Close()
	assert.IsType(t, &boltstore.Store{}, res.Persister)

	doc, err := res.Persister.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(Config{Backend: "redis", Path: "x"})
	assert.True(t, errors.Is(err, ErrUnknownBackend))

	_, err = Open(Config{Backend: "file"})
	assert.Error(t, err)
}
