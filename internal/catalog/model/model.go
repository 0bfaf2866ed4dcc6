package model

// Brand placeholder used by store adapters that could not tell the brand.
const UnknownBrand = "Unknown"

// Spec value that counts as "not filled" when merging.
const UnknownSpecValue = "Desconocido"

const DefaultCurrency = "EUR"

// ScrapedProduct is what a store adapter hands to the catalog.
type ScrapedProduct struct {
	URL           string            `json:"url"`
	Name          string            `json:"name"`
	Brand         string            `json:"brand"`
	Price         float64           `json:"price"`
	OriginalPrice *float64          `json:"original_price,omitempty"`
	Image         string            `json:"image,omitempty"`
	Images        []string          `json:"images,omitempty"`
	Specs         map[string]string `json:"specs,omitempty"`
	Description   string            `json:"description,omitempty"`
}

type PriceEntry struct {
	Store         string   `json:"store"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	URL           string   `json:"url"`
	Currency      string   `json:"currency"`
	LastUpdated   string   `json:"last_updated"`
}

// Racket is one canonical entry of the catalog.
type Racket struct {
	ID          string            `json:"id"`
	Brand       string            `json:"brand"`
	Model       string            `json:"model"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
	Images      []string          `json:"images"`
	Prices      []PriceEntry      `json:"prices"`
}

// PriceFor returns the index of the store's entry in r.Prices or -1.
func (r *Racket) PriceFor(store string) int {
	for i := range r.Prices {
		if r.Prices[i].Store == store {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy, so callers outside the catalog can't mutate it.
func (r *Racket) Clone() *Racket {
	if r == nil {
		return nil
	}
	out := *r
	out.Specs = make(map[string]string, len(r.Specs))
	for k, v := range r.Specs {
		out.Specs[k] = v
	}
	out.Images = make([]string, len(r.Images))
	copy(out.Images, r.Images)
	out.Prices = make([]PriceEntry, len(r.Prices))
	for i, p := range r.Prices {
		if p.OriginalPrice != nil {
			v := *p.OriginalPrice
			p.OriginalPrice = &v
		}
		out.Prices[i] = p
	}
	return &out
}

// PriceUpdate is the direct price path used by the price finder.
type PriceUpdate struct {
	Slug          string   `json:"slug"`
	Store         string   `json:"store"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	URL           string   `json:"url"`
	Currency      string   `json:"currency,omitempty"`
}
