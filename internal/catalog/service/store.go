package service

import (
	"strconv"
	"strings"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

// Store is the in-memory catalog: slug -> racket plus the URL -> slug index.
// Both maps are written together; callers hold the Catalog lock.
type Store struct {
	doc       *model.Document
	byURL     map[string]string
	allocated map[string]struct{} // every slug handed out in this process
	fps       map[string]cachedFingerprint
}

type cachedFingerprint struct {
	model string
	fp    names.Fingerprint
}

func NewStore() *Store {
	return &Store{
		doc:       model.NewDocument(),
		byURL:     make(map[string]string),
		allocated: make(map[string]struct{}),
		fps:       make(map[string]cachedFingerprint),
	}
}

// Reset replaces the catalog with doc and rebuilds the URL index from the
// price entries. Slugs allocated earlier stay reserved.
func (s *Store) Reset(doc *model.Document) {
	if doc == nil {
		doc = model.NewDocument()
	}
	s.doc = doc
	s.byURL = make(map[string]string)
	s.fps = make(map[string]cachedFingerprint)
	doc.Each(func(r *model.Racket) bool {
		s.allocated[r.ID] = struct{}{}
		for _, p := range r.Prices {
			s.IndexURL(p.URL, r.ID)
		}
		return true
	})
}

// AllocateSlug reserves a fresh slug for brand+name, suffixing -1, -2, ... on collision.
func (s *Store) AllocateSlug(brand, name string) string {
	base := slugBase(brand, name)
	slug := base
	for i := 1; s.taken(slug); i++ {
		slug = base + "-" + strconv.Itoa(i)
	}
	s.allocated[slug] = struct{}{}
	return slug
}

func (s *Store) taken(slug string) bool {
	if _, ok := s.allocated[slug]; ok {
		return true
	}
	_, ok := s.doc.Get(slug)
	return ok
}

// Insert appends a new racket; its slug must come from AllocateSlug.
func (s *Store) Insert(r *model.Racket) {
	s.allocated[r.ID] = struct{}{}
	s.doc.Put(r)
}

func (s *Store) Get(slug string) (*model.Racket, bool) {
	return s.doc.Get(slug)
}

// Lookup resolves a source URL to its racket slug.
func (s *Store) Lookup(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}
	slug, ok := s.byURL[url]
	return slug, ok
}

func (s *Store) IndexURL(url, slug string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	s.byURL[url] = slug
}

// Each walks rackets in insertion order.
func (s *Store) Each(fn func(r *model.Racket) bool) { s.doc.Each(fn) }

func (s *Store) Len() int { return s.doc.Len() }

// Document is the live document, handed to the persister on save.
func (s *Store) Document() *model.Document { return s.doc }

// fingerprint of r.Model, recomputed only when the model name changed.
func (s *Store) fingerprint(r *model.Racket) names.Fingerprint {
	if c, ok := s.fps[r.ID]; ok && c.model == r.Model {
		return c.fp
	}
	fp := names.Extract(r.Model)
	s.fps[r.ID] = cachedFingerprint{model: r.Model, fp: fp}
	return fp
}
