package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

func TestCanonicalImageURL(t *testing.T) {
	cases := map[string]string{
		"//cdn.shopify.com/x_300x.jpg?v=1":                           "https://cdn.shopify.com/x.jpg?v=1",
		"https://cdn.shopify.com/s/files/a_600x600.png?v=17&width=3": "https://cdn.shopify.com/s/files/a.png?v=17",
		"https://cdn.shopify.com/a_x800_crop_center.webp":            "https://cdn.shopify.com/a.webp",
		"https://cdn.shopify.com/a_1x_2x.jpg":                        "https://cdn.shopify.com/a.jpg",
		"https://cdn.shopify.com/a_b.jpg?width=100":                  "https://cdn.shopify.com/a_b.jpg",
		"https://www.padelnuestro.com/media/p.jpg?w=300&h=300":       "https://www.padelnuestro.com/media/p.jpg",
		"//img.example.com/a.jpg?size=2":                             "https://img.example.com/a.jpg?size=2",
		"https://m.media-amazon.com/images/I/a._AC_SL1500_.jpg":      "https://m.media-amazon.com/images/I/a._AC_SL1500_.jpg",
		"":                                                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalImageURL(in), "CanonicalImageURL(%q)", in)
	}
}

func TestCanonicalImageURL_Idempotent(t *testing.T) {
	inputs := []string{
		"//cdn.shopify.com/x_300x.jpg?v=1",
		"https://cdn.shopify.com/a_1x_crop_center_2x300.jpg?v=a%20b",
		"https://cdn.shopify.com/a.jpg?",
		"https://padelnuestro.com/p.jpg?x=1#frag",
		"http://other.example/a_300x.jpg?v=2",
		"not a url at all",
	}
	for _, in := range inputs {
		once := CanonicalImageURL(in)
		assert.Equal(t, once, CanonicalImageURL(once), "input %q", in)
	}
}

func TestMergeImages_KeepsOrderAndDedups(t *testing.T) {
	r := &model.Racket{Images: []string{"https://b/2.jpg", "https://b/1.jpg"}}
	mergeImages(r, galleryOf("https://b/1.jpg", []string{"//b/3.jpg", "https://b/2.jpg"}))
	assert.Equal(t, []string{"https://b/2.jpg", "https://b/1.jpg", "https://b/3.jpg"}, r.Images)
}

func TestGalleryOf(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, galleryOf("a", []string{"b"}))
	assert.Equal(t, []string{"b", "a"}, galleryOf("a", []string{"b", "a"}))
	assert.Equal(t, []string{"b"}, galleryOf("", []string{"b"}))
}

func TestMerge_BrandOnlyUpgradesFromUnknown(t *testing.T) {
	r := &model.Racket{Brand: model.UnknownBrand, Model: "x"}
	Merge(r, product("u", "x", "Oxdog", 1), "s", fixedNow)
	assert.Equal(t, "Oxdog", r.Brand)

	Merge(r, product("u", "x", "Kelme", 1), "s", fixedNow)
	assert.Equal(t, "Oxdog", r.Brand)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "adidas-adidas-metalbone-33-2024", Slugify("Adidas-Adidas Metalbone 3.3 2024"))
	assert.Equal(t, "vibor-a-yarara-edicion-limitada", Slugify("Vibor-A - Yarara  Edición Limitada"))
	assert.Equal(t, "jhayber-rebel", Slugify("  J'hayber-Rebel--"))
	assert.Equal(t, "generic-racket-x", slugBase("Unknown", "Racket X"))
	assert.Equal(t, "generic", slugBase("", "¡¿?!"))
	assert.Equal(t, "racket", slugBase("¡!", "¿?"))
}

func TestAllocateSlug_NeverReuses(t *testing.T) {
	s := NewStore()

	a := s.AllocateSlug("Head", "Speed")
	assert.Equal(t, "head-speed", a)
	s.Insert(&model.Racket{ID: a, Brand: "Head", Model: "Speed"})

	b := s.AllocateSlug("Head", "Speed")
	assert.Equal(t, "head-speed-1", b)

	// allocated but never inserted still counts
	c := s.AllocateSlug("Head", "Speed")
	assert.Equal(t, "head-speed-2", c)

	// a reload that drops a racket does not free its slug
	s.Reset(model.NewDocument())
	assert.Equal(t, "head-speed-3", s.AllocateSlug("Head", "Speed"))
}

func TestScore(t *testing.T) {
	a := names.Extract("Head Gravity Pro 2024")
	b := names.Extract("Pala Head Gravity Pro 2024")
	sc, ok := Score(a, b)
	require.True(t, ok)
	assert.Equal(t, 105.0, sc)

	_, ok = Score(a, names.Extract("Head Gravity Pro 2025"))
	assert.False(t, ok)

	_, ok = Score(a, names.Extract("Head Gravity 2024"))
	assert.False(t, ok)

	sc, ok = Score(names.Extract("Head Gravity Pro"), a)
	require.True(t, ok)
	assert.Equal(t, 100.0, sc)
}

func TestMatcher_BelowThresholdIsNew(t *testing.T) {
	s := NewStore()
	s.Insert(&model.Racket{ID: "head-speed", Brand: "Head", Model: "Head Speed Motion 2024"})

	m := NewMatcher(0)
	d := m.Match(s, product("u1", "Head Radical Motion 2024", "Head", 1))
	assert.Equal(t, MethodNew, d.Method)
	assert.Empty(t, d.Slug)
	assert.Less(t, d.Score, DefaultThreshold)

	d = m.Match(s, product("u2", "Head Speed Motion 2024", "Head", 1))
	assert.Equal(t, MethodFingerprint, d.Method)
	assert.Equal(t, "head-speed", d.Slug)
}

func TestIsExcluded(t *testing.T) {
	for _, n := range []string{
		"Pack Nox AT10", "Duo Bullpadel", "Conjunto Head", "Oferta Siux",
		"Nox + Paletero", "Mochila Adidas", "Paletero Head", "Zapatillas Asics",
	} {
		assert.True(t, IsExcluded(n), n)
	}
	assert.False(t, IsExcluded("Head Gravity Pro 2024"))
}
