package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"padel-catalog/internal/catalog/service"
	"padel-catalog/internal/config"
	"padel-catalog/internal/storage"
)

var (
	flagBackend   string
	flagPath      string
	flagThreshold float64
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Padel racket catalog tool",
	Long:          "Imports store feeds into the canonical racket catalog, updates prices and inspects entries.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "", "catalog backend: file or bolt (default $CATALOG_BACKEND)")
	pf.StringVar(&flagPath, "catalog", "", "catalog path (default $CATALOG_PATH)")
	pf.Float64Var(&flagThreshold, "threshold", 0, "fuzzy match threshold (default $MATCH_THRESHOLD or 88)")
	pf.BoolVar(&flagJSON, "json", false, "print JSON")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig applies command-line overrides on top of the environment.
func loadConfig() config.Config {
	cfg := config.Load()
	if flagBackend != "" {
		cfg.CatalogBackend = flagBackend
	}
	if flagPath != "" {
		cfg.CatalogPath = flagPath
	}
	if flagThreshold > 0 {
		cfg.MatchThreshold = flagThreshold
	}
	return cfg
}

// openCatalog opens the configured store and loads the catalog.
// The returned close func releases the backend.
func openCatalog(ctx context.Context, cfg config.Config, log zerolog.Logger) (*service.Catalog, func(), error) {
	st, err := storage.Open(storage.Config{Backend: cfg.CatalogBackend, Path: cfg.CatalogPath})
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	cat := service.New(st.Persister, service.Options{Threshold: cfg.MatchThreshold, Logger: &log})
	if err := cat.Load(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}
	return cat, func() { _ = st.Close() }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
