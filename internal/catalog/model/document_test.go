package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, d *Document) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(d))
	return buf.String()
}

func TestDocument_KeepsInsertionOrder(t *testing.T) {
	d := NewDocument()
	d.Put(&Racket{ID: "zeta", Brand: "Siux", Model: "Zeta"})
	d.Put(&Racket{ID: "alpha", Brand: "Head", Model: "Alpha"})
	d.Put(&Racket{ID: "mid", Brand: "Nox", Model: "Mid"})
	d.Put(&Racket{ID: "zeta", Brand: "Siux", Model: "Zeta 2024"}) // replace keeps position

	var back Document
	require.NoError(t, json.Unmarshal([]byte(encode(t, d)), &back))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, back.Slugs())
	r, ok := back.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, "Zeta 2024", r.Model)
	assert.NotNil(t, r.Specs)
}

func TestDocument_PreservesNonASCIIAndURLs(t *testing.T) {
	d := NewDocument()
	d.Put(&Racket{
		ID: "a", Brand: "Head", Model: "Pala Niño", Specs: map[string]string{"Núcleo": "Goma EVA"},
		Prices: []PriceEntry{{Store: "amazon", Price: 99.5, URL: "https://a/x?tag=1&ref=2", Currency: "EUR"}},
	})
	out := encode(t, d)
	assert.Contains(t, out, "Pala Niño")
	assert.Contains(t, out, "Núcleo")
	assert.Contains(t, out, "https://a/x?tag=1&ref=2")
	assert.Contains(t, out, `"original_price":null`)
}

func TestDocument_KeyIsAuthoritative(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"head-x":{"brand":"Head","model":"X"}}`), &d))
	r, ok := d.Get("head-x")
	require.True(t, ok)
	assert.Equal(t, "head-x", r.ID)
}

func TestDocument_MissingCollectionsLoadEmpty(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"head-x":{"brand":"Head","model":"X"}}`), &d))
	r, _ := d.Get("head-x")
	assert.NotNil(t, r.Images)
	assert.NotNil(t, r.Prices)

	out := encode(t, &d)
	assert.Contains(t, out, `"images":[]`)
	assert.Contains(t, out, `"prices":[]`)
	assert.Contains(t, out, `"specs":{}`)
	assert.NotContains(t, out, "null")
}

func TestDocument_RejectsNonObject(t *testing.T) {
	var d Document
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 3}`), &d))
}

func TestRacket_CloneIsDeep(t *testing.T) {
	orig := 10.0
	r := &Racket{ID: "a", Specs: map[string]string{"k": "v"}, Images: []string{"i"},
		Prices: []PriceEntry{{Store: "s", OriginalPrice: &orig}}}
	c := r.Clone()
	c.Specs["k"] = "x"
	c.Images[0] = "j"
	*c.Prices[0].OriginalPrice = 20

	assert.Equal(t, "v", r.Specs["k"])
	assert.Equal(t, "i", r.Images[0])
	assert.Equal(t, 10.0, orig)
	assert.Equal(t, 0, r.PriceFor("s"))
	assert.Equal(t, -1, r.PriceFor("other"))
}
