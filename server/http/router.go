package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	catHnd "padel-catalog/internal/catalog/handler"
	"padel-catalog/internal/config"
	"padel-catalog/internal/middleware"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, cat catHnd.Catalog) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))

	r.Get("/health", catHnd.Health(cat))

	// приём данных от магазинов
	r.Route("/stores/{store}", func(r chi.Router) {
		r.Post("/products", catHnd.SubmitProducts(cat, logger))
		r.Post("/feed", catHnd.ImportFeed(cat, logger))
	})

	r.Route("/rackets", func(r chi.Router) {
		r.Get("/", catHnd.ListRackets(cat))
		r.Get("/{slug}", catHnd.GetRacket(cat))
		r.Post("/{slug}/prices", catHnd.UpsertPrice(cat, logger))
	})

	r.Post("/compare", catHnd.Compare(cat))

	return r
}
