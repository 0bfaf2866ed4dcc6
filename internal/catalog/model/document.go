package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned by persisters when the stored payload
// can't be decoded. The catalog then starts empty.
var ErrMalformedDocument = errors.New("malformed catalog document")

// Document is the persisted catalog: slug -> racket, in insertion order.
// The JSON form is a plain object; key order on disk is the iteration order.
type Document struct {
	order   []string
	rackets map[string]*Racket
}

func NewDocument() *Document {
	return &Document{rackets: make(map[string]*Racket)}
}

// Put adds or replaces a racket. New slugs go to the end.
func (d *Document) Put(r *Racket) {
	if d.rackets == nil {
		d.rackets = make(map[string]*Racket)
	}
	if _, ok := d.rackets[r.ID]; !ok {
		d.order = append(d.order, r.ID)
	}
	d.rackets[r.ID] = r
}

func (d *Document) Get(slug string) (*Racket, bool) {
	r, ok := d.rackets[slug]
	return r, ok
}

func (d *Document) Len() int { return len(d.order) }

// Slugs returns the slugs in insertion order.
func (d *Document) Slugs() []string {
	return append([]string(nil), d.order...)
}

// Each walks the rackets in insertion order until fn returns false.
func (d *Document) Each(fn func(r *Racket) bool) {
	for _, s := range d.order {
		if !fn(d.rackets[s]) {
			return
		}
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(s)
		if err != nil {
			return nil, err
		}
		v, err := marshalNoEscape(d.rackets[s])
		if err != nil {
			return nil, fmt.Errorf("racket %s: %w", s, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog document: expected object, got %v", tok)
	}

	out := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		slug, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog document: expected key, got %v", tok)
		}
		var r Racket
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("racket %s: %w", slug, err)
		}
		// the key is authoritative; older files may lack "id"
		r.ID = slug
		if r.Specs == nil {
			r.Specs = map[string]string{}
		}
		if r.Images == nil {
			r.Images = []string{}
		}
		if r.Prices == nil {
			r.Prices = []PriceEntry{}
		}
		out.Put(&r)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = *out
	return nil
}

// encoding/json escapes <, > and & by default; URLs in the catalog keep them raw.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
