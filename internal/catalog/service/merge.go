package service

import (
	"strings"
	"time"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

// Merge folds scrape p from store into r. r is mutated in place.
func Merge(r *model.Racket, p model.ScrapedProduct, store string, now time.Time) {
	// brand: only upgrade from Unknown
	if r.Brand == model.UnknownBrand && p.Brand != "" && p.Brand != model.UnknownBrand {
		r.Brand = p.Brand
	}

	if r.Description == "" {
		r.Description = strings.TrimSpace(p.Description)
	}

	mergeSpecs(r, p.Specs)
	mergeImages(r, galleryOf(p.Image, p.Images))

	upsertPrice(r, model.PriceEntry{
		Store:         store,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		URL:           p.URL,
	}, now)

	// master name: a year-bearing name beats a yearless one, never the reverse
	if !names.Extract(r.Model).HasYear() && names.Extract(p.Name).HasYear() {
		r.Model = p.Name
	}
}

func mergeSpecs(r *model.Racket, specs map[string]string) {
	if r.Specs == nil {
		r.Specs = make(map[string]string, len(specs))
	}
	for label, value := range specs {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		cur, ok := r.Specs[label]
		if !ok || strings.TrimSpace(cur) == "" || cur == model.UnknownSpecValue {
			r.Specs[label] = value
		}
	}
}

// mergeImages appends canonical URLs not yet present, keeping existing order.
func mergeImages(r *model.Racket, gallery []string) {
	for _, raw := range gallery {
		u := CanonicalImageURL(raw)
		if u == "" || contains(r.Images, u) {
			continue
		}
		r.Images = append(r.Images, u)
	}
}

// upsertPrice keeps one entry per store. An original price only overwrites
// when the new one is set and positive; currency changes only when e names one.
func upsertPrice(r *model.Racket, e model.PriceEntry, now time.Time) {
	stamp := now.UTC().Format(time.RFC3339)
	if i := r.PriceFor(e.Store); i >= 0 {
		cur := &r.Prices[i]
		cur.Price = e.Price
		if e.URL != "" {
			cur.URL = e.URL
		}
		cur.LastUpdated = stamp
		if e.OriginalPrice != nil && *e.OriginalPrice > 0 {
			v := *e.OriginalPrice
			cur.OriginalPrice = &v
		}
		if e.Currency != "" || cur.Currency == "" {
			cur.Currency = currencyOr(e.Currency)
		}
		return
	}

	var orig *float64
	if e.OriginalPrice != nil && *e.OriginalPrice > 0 {
		v := *e.OriginalPrice
		orig = &v
	}
	r.Prices = append(r.Prices, model.PriceEntry{
		Store:         e.Store,
		Price:         e.Price,
		OriginalPrice: orig,
		URL:           e.URL,
		Currency:      currencyOr(e.Currency),
		LastUpdated:   stamp,
	})
}

func currencyOr(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return model.DefaultCurrency
	}
	return c
}
