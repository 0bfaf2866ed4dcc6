package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"padel-catalog/internal/catalog/model"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// memPersister keeps the serialized document, so every save/load goes through JSON.
type memPersister struct {
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

func (m *memPersister) Load(ctx context.Context) (*model.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if len(m.data) == 0 {
		return model.NewDocument(), nil
	}
	doc := model.NewDocument()
	if err := json.Unmarshal(m.data, doc); err != nil {
		return nil, errors.Join(model.ErrMalformedDocument, err)
	}
	return doc, nil
}

func (m *memPersister) Save(ctx context.Context, doc *model.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	m.data = buf.Bytes()
	m.saves++
	return nil
}

func newTestCatalog(t *testing.T) (*Catalog, *memPersister) {
	t.Helper()
	p := &memPersister{}
	c := New(p, Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, c.Load(context.Background()))
	return c, p
}

func product(url, name, brand string, price float64) model.ScrapedProduct {
	return model.ScrapedProduct{URL: url, Name: name, Brand: brand, Price: price}
}

func mustResolve(t *testing.T, c *Catalog, p model.ScrapedProduct, store string) Result {
	t.Helper()
	res, err := c.ResolveAndMerge(context.Background(), p, store)
	require.NoError(t, err)
	return res
}

func ptr(f float64) *float64 { return &f }
