package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
)

// Persister loads and saves the catalog as one document.
type Persister interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}

type Options struct {
	Threshold float64          // fuzzy acceptance score, DefaultThreshold when 0
	Logger    *zerolog.Logger  // nil: no logging
	Now       func() time.Time // clock for last_updated
}

type Action string

const (
	ActionCreated  Action = "created"
	ActionMerged   Action = "merged"
	ActionExcluded Action = "excluded"
	ActionInvalid  Action = "invalid"
)

// Result of one ResolveAndMerge call.
type Result struct {
	Slug   string  `json:"slug,omitempty"`
	Action Action  `json:"action"`
	Method Method  `json:"method,omitempty"`
	Score  float64 `json:"score,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// Catalog is the public surface of the resolver. Calls are serialized; a
// merge and its save never interleave with another call.
type Catalog struct {
	mu      sync.Mutex
	store   *Store
	matcher Matcher
	persist Persister
	log     zerolog.Logger
	now     func() time.Time
}

// New builds an empty catalog. p may be nil for a purely in-memory catalog.
func New(p Persister, opt Options) *Catalog {
	log := zerolog.Nop()
	if opt.Logger != nil {
		log = opt.Logger.With().Str("component", "catalog").Logger()
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	return &Catalog{
		store:   NewStore(),
		matcher: NewMatcher(opt.Threshold),
		persist: p,
		log:     log,
		now:     now,
	}
}

// Load replaces the in-memory catalog with the persisted one. A malformed
// document yields an empty catalog; other errors are returned.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.persist == nil {
		c.store.Reset(nil)
		return nil
	}
	doc, err := c.persist.Load(ctx)
	if errors.Is(err, model.ErrMalformedDocument) {
		c.log.Warn().Err(err).Msg("catalog document unreadable, starting empty")
		doc, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	c.store.Reset(doc)
	c.log.Info().Int("rackets", c.store.Len()).Msg("catalog loaded")
	return nil
}

// Save writes the whole catalog through the persister.
func (c *Catalog) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx)
}

func (c *Catalog) save(ctx context.Context) error {
	if c.persist == nil {
		return nil
	}
	if err := c.persist.Save(ctx, c.store.Document()); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// ResolveAndMerge finds or creates the canonical racket for p and merges p
// into it as a listing of store. Invalid and excluded products are dropped
// without error; only persistence failures are returned, and then the
// in-memory merge still stands.
func (c *Catalog) ResolveAndMerge(ctx context.Context, p model.ScrapedProduct, store string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, changed, err := c.resolve(p, store)
	if err != nil || !changed {
		return res, err
	}
	return res, c.save(ctx)
}

// ResolveBatch resolves products in order as one call and saves once at the
// end. Results line up with products.
func (c *Catalog) ResolveBatch(ctx context.Context, products []model.ScrapedProduct, store string) ([]Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Result, 0, len(products))
	dirty := false
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return out, c.flush(ctx, dirty, err)
		}
		res, changed, err := c.resolve(p, store)
		if err != nil {
			return out, c.flush(ctx, dirty, err)
		}
		dirty = dirty || changed
		out = append(out, res)
	}
	if !dirty {
		return out, nil
	}
	return out, c.save(ctx)
}

// flush saves what was merged before cause stopped a batch.
func (c *Catalog) flush(ctx context.Context, dirty bool, cause error) error {
	if !dirty {
		return cause
	}
	return errors.Join(cause, c.save(context.WithoutCancel(ctx)))
}

func (c *Catalog) resolve(p model.ScrapedProduct, store string) (Result, bool, error) {
	p = trimProduct(p)
	store = strings.TrimSpace(store)
	if reason := validateProduct(p, store); reason != "" {
		c.log.Warn().Str("store", store).Str("url", p.URL).Str("name", p.Name).
			Str("reason", reason).Msg("scraped product dropped")
		return Result{Action: ActionInvalid, Reason: reason}, false, nil
	}
	if IsExcluded(p.Name) {
		c.log.Debug().Str("store", store).Str("name", p.Name).Msg("bundle excluded")
		return Result{Action: ActionExcluded}, false, nil
	}

	p.Brand = commitBrand(p.Brand, p.Name)
	d := c.matcher.Match(c.store, p)
	res := Result{Method: d.Method, Score: d.Score}

	var r *model.Racket
	if d.Method == MethodNew {
		r = &model.Racket{
			ID:     c.store.AllocateSlug(p.Brand, p.Name),
			Brand:  p.Brand,
			Model:  p.Name,
			Specs:  map[string]string{},
			Images: []string{},
			Prices: []model.PriceEntry{},
		}
		c.store.Insert(r)
		res.Action = ActionCreated
	} else {
		var ok bool
		r, ok = c.store.Get(d.Slug)
		if !ok {
			// index and catalog always move together; this means a bug upstream
			return Result{}, false, fmt.Errorf("resolve %s: slug %q indexed but missing", p.URL, d.Slug)
		}
		res.Action = ActionMerged
	}

	Merge(r, p, store, c.now())
	c.store.IndexURL(p.URL, r.ID)
	res.Slug = r.ID

	c.log.Debug().Str("store", store).Str("slug", r.ID).Str("action", string(res.Action)).
		Str("method", string(d.Method)).Float64("score", d.Score).Msg("resolved")
	if res.Action == ActionCreated {
		c.log.Info().Str("store", store).Str("slug", r.ID).Str("brand", r.Brand).Msg("racket created")
	}
	return res, true, nil
}

// UpsertPrice writes the store's price on an already-resolved racket.
// An unknown slug, or a URL already indexed to another racket, is a warning,
// not an error; the bool reports whether anything changed.
func (c *Catalog) UpsertPrice(ctx context.Context, u model.PriceUpdate) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u.Slug = strings.TrimSpace(u.Slug)
	u.Store = strings.TrimSpace(u.Store)
	u.URL = strings.TrimSpace(u.URL)
	if u.Store == "" || u.Price < 0 {
		c.log.Warn().Str("slug", u.Slug).Str("store", u.Store).Float64("price", u.Price).Msg("price update dropped")
		return false, nil
	}
	r, ok := c.store.Get(u.Slug)
	if !ok {
		c.log.Warn().Str("slug", u.Slug).Str("store", u.Store).Msg("price update for unknown racket")
		return false, nil
	}
	if owner, taken := c.store.Lookup(u.URL); taken && owner != r.ID {
		c.log.Warn().Str("slug", u.Slug).Str("store", u.Store).Str("url", u.URL).
			Str("owner", owner).Msg("price update url belongs to another racket")
		return false, nil
	}

	upsertPrice(r, model.PriceEntry{
		Store:         u.Store,
		Price:         u.Price,
		OriginalPrice: u.OriginalPrice,
		URL:           u.URL,
		Currency:      currencyOr(u.Currency),
	}, c.now())
	c.store.IndexURL(u.URL, r.ID)

	return true, c.save(ctx)
}

// Get returns a copy of the racket.
func (c *Catalog) Get(slug string) (*model.Racket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.store.Get(slug)
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Lookup resolves a source URL to its slug.
func (c *Catalog) Lookup(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Lookup(url)
}

// List returns copies of all rackets in catalog order.
func (c *Catalog) List() []*model.Racket {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.Racket, 0, c.store.Len())
	c.store.Each(func(r *model.Racket) bool {
		out = append(out, r.Clone())
		return true
	})
	return out
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// commitBrand settles the brand before matching: the declared one, or one
// rescued from the name when the adapter reported none.
func commitBrand(brand, name string) string {
	if brand != "" && !strings.EqualFold(brand, model.UnknownBrand) {
		return brand
	}
	if b, _, ok := names.RescueBrand(name); ok {
		return b
	}
	return model.UnknownBrand
}

func trimProduct(p model.ScrapedProduct) model.ScrapedProduct {
	p.URL = strings.TrimSpace(p.URL)
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Image = strings.TrimSpace(p.Image)
	return p
}

func validateProduct(p model.ScrapedProduct, store string) string {
	switch {
	case p.Name == "":
		return "empty_name"
	case p.URL == "":
		return "empty_url"
	case store == "":
		return "empty_store"
	case p.Price < 0:
		return "negative_price"
	}
	return ""
}

// Threshold is the fuzzy acceptance score in use.
func (c *Catalog) Threshold() float64 { return c.matcher.Threshold }
