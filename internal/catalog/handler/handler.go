// Package handler exposes the catalog over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/catalog/names"
	"padel-catalog/internal/catalog/service"
	"padel-catalog/internal/fileio"
)

// Catalog is what the handlers need from *service.Catalog.
type Catalog interface {
	ResolveAndMerge(ctx context.Context, p model.ScrapedProduct, store string) (service.Result, error)
	ResolveBatch(ctx context.Context, products []model.ScrapedProduct, store string) ([]service.Result, error)
	UpsertPrice(ctx context.Context, u model.PriceUpdate) (bool, error)
	Get(slug string) (*model.Racket, bool)
	List() []*model.Racket
	Len() int
	Threshold() float64
}

const maxFormMemory = 32 << 20

// Summary counts results by action.
type Summary struct {
	Created  int `json:"created"`
	Merged   int `json:"merged"`
	Excluded int `json:"excluded"`
	Invalid  int `json:"invalid"`
}

func summarize(results []service.Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Action {
		case service.ActionCreated:
			s.Created++
		case service.ActionMerged:
			s.Merged++
		case service.ActionExcluded:
			s.Excluded++
		case service.ActionInvalid:
			s.Invalid++
		}
	}
	return s
}

type resolveResponse struct {
	Store   string           `json:"store"`
	Summary Summary          `json:"summary"`
	Results []service.Result `json:"results"`
}

func Health(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rackets": cat.Len()})
	}
}

// SubmitProducts: POST /stores/{store}/products, body is one scraped product or an array.
func SubmitProducts(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := reqLogger(r, logger)
		store := strings.TrimSpace(chi.URLParam(r, "store"))

		products, single, err := decodeProducts(r.Body)
		if err != nil {
			bodyError(w, err)
			return
		}

		var results []service.Result
		if single {
			var res service.Result
			res, err = cat.ResolveAndMerge(r.Context(), products[0], store)
			results = []service.Result{res}
		} else {
			results, err = cat.ResolveBatch(r.Context(), products, store)
		}
		if err != nil {
			log.Error().Err(err).Str("store", store).Msg("resolve")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resolveResponse{Store: store, Summary: summarize(results), Results: results})
	}
}

type feedResponse struct {
	Store   string                 `json:"store"`
	File    string                 `json:"file"`
	Rows    int                    `json:"rows"`
	Skipped []fileio.Skipped       `json:"skipped"`
	Summary *Summary               `json:"summary,omitempty"`
	Results []service.Result       `json:"results,omitempty"`
	Parsed  []model.ScrapedProduct `json:"parsed,omitempty"` // dry_run only
}

// ImportFeed: POST /stores/{store}/feed, multipart field "file" (CSV/XLSX/XLS/JSON).
// dry_run=1 parses without touching the catalog.
func ImportFeed(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(r, logger)
		store := strings.TrimSpace(chi.URLParam(r, "store"))

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			bodyError(w, err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		feed, err := fileio.ReadFeed(file, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read feed: "+err.Error())
			return
		}
		resp := feedResponse{
			Store:   store,
			File:    header.Filename,
			Rows:    len(feed.Products) + len(feed.Skipped),
			Skipped: feed.Skipped,
		}
		if resp.Skipped == nil {
			resp.Skipped = []fileio.Skipped{}
		}

		if toBool(r.FormValue("dry_run"), false) {
			resp.Parsed = feed.Products
			writeJSON(w, http.StatusOK, resp)
			return
		}

		results, err := cat.ResolveBatch(r.Context(), feed.Products, store)
		if err != nil {
			log.Error().Err(err).Str("store", store).Str("file", header.Filename).Msg("feed import")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		sum := summarize(results)
		resp.Summary, resp.Results = &sum, results
		writeJSON(w, http.StatusOK, resp)

		log.Info().
			Str("store", store).
			Str("file", header.Filename).
			Int("rows", resp.Rows).
			Int("created", sum.Created).
			Int("merged", sum.Merged).
			Dur("elapsed", time.Since(start)).
			Msg("feed imported")
	}
}

type priceRequest struct {
	Store         string   `json:"store"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	URL           string   `json:"url"`
	Currency      string   `json:"currency"`
}

// UpsertPrice: POST /rackets/{slug}/prices.
func UpsertPrice(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := reqLogger(r, logger)
		slug := chi.URLParam(r, "slug")

		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			bodyError(w, err)
			return
		}
		switch {
		case strings.TrimSpace(req.Store) == "":
			writeError(w, http.StatusBadRequest, "store is required")
			return
		case req.Price == nil:
			writeError(w, http.StatusBadRequest, "price is required")
			return
		case *req.Price < 0:
			writeError(w, http.StatusBadRequest, "price must not be negative")
			return
		}
		if _, ok := cat.Get(slug); !ok {
			writeError(w, http.StatusNotFound, "racket not found")
			return
		}

		changed, err := cat.UpsertPrice(r.Context(), model.PriceUpdate{
			Slug:          slug,
			Store:         req.Store,
			Price:         *req.Price,
			OriginalPrice: req.OriginalPrice,
			URL:           req.URL,
			Currency:      req.Currency,
		})
		if err != nil {
			log.Error().Err(err).Str("slug", slug).Msg("upsert price")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !changed {
			// the racket exists, so the url is indexed to another one
			writeError(w, http.StatusConflict, "url belongs to another racket")
			return
		}
		rk, _ := cat.Get(slug)
		writeJSON(w, http.StatusOK, rk)
	}
}

// ListRackets: GET /rackets?brand=&q=&limit=
func ListRackets(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := strings.TrimSpace(r.URL.Query().Get("brand"))
		q := names.Normalize(r.URL.Query().Get("q"))
		limit := atoi(r.URL.Query().Get("limit"), 0)

		out := make([]*model.Racket, 0)
		for _, rk := range cat.List() {
			if brand != "" && !strings.EqualFold(rk.Brand, brand) {
				continue
			}
			if q != "" && !strings.Contains(names.Normalize(rk.Brand+" "+rk.Model), q) {
				continue
			}
			out = append(out, rk)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": len(out), "rackets": out})
	}
}

// GetRacket: GET /rackets/{slug}
func GetRacket(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rk, ok := cat.Get(chi.URLParam(r, "slug"))
		if !ok {
			writeError(w, http.StatusNotFound, "racket not found")
			return
		}
		writeJSON(w, http.StatusOK, rk)
	}
}

type compareRequest struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	Threshold *float64 `json:"threshold"`
}

// Compare: POST /compare {"a": "...", "b": "..."} shows how the matcher sees two names.
// threshold comes from the body, then ?threshold=, then the catalog.
func Compare(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			bodyError(w, err)
			return
		}
		if strings.TrimSpace(req.A) == "" || strings.TrimSpace(req.B) == "" {
			writeError(w, http.StatusBadRequest, "a and b are required")
			return
		}
		threshold := toFloat(r.URL.Query().Get("threshold"), cat.Threshold())
		if req.Threshold != nil {
			threshold = *req.Threshold
		}
		writeJSON(w, http.StatusOK, service.Compare(req.A, req.B, threshold))
	}
}
