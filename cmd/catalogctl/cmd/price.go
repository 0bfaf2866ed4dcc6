package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/config"
)

var (
	priceStore    string
	priceValue    float64
	priceOriginal float64
	priceURL      string
	priceCurrency string
)

var priceCmd = &cobra.Command{
	Use:   "price <slug>",
	Short: "Set one store's price on an existing racket",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceStore, "store", "", "store id (required)")
	f.Float64Var(&priceValue, "price", -1, "current price (required)")
	f.Float64Var(&priceOriginal, "original-price", 0, "price before discount")
	f.StringVar(&priceURL, "url", "", "product page")
	f.StringVar(&priceCurrency, "currency", "", "ISO currency, EUR when empty")
	_ = priceCmd.MarkFlagRequired("store")
	_ = priceCmd.MarkFlagRequired("price")
}

func runPrice(cmd *cobra.Command, args []string) error {
	if priceValue < 0 {
		return errors.New("--price must not be negative")
	}
	slug, store := strings.TrimSpace(args[0]), strings.TrimSpace(priceStore)
	if store == "" {
		return errors.New("--store must not be empty")
	}
	cfg := loadConfig()
	log := config.SetupCLILogger(cfg)

	cat, closeFn, err := openCatalog(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	u := model.PriceUpdate{
		Slug:     slug,
		Store:    store,
		Price:    priceValue,
		URL:      priceURL,
		Currency: priceCurrency,
	}
	if priceOriginal > 0 {
		u.OriginalPrice = &priceOriginal
	}
	changed, err := cat.UpsertPrice(cmd.Context(), u)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("price not applied to %q: unknown racket or url owned by another racket", slug)
	}

	r, ok := cat.Get(slug)
	if !ok {
		return fmt.Errorf("racket %q not found", slug)
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), r)
	}
	i := r.PriceFor(store)
	if i < 0 {
		return fmt.Errorf("racket %q has no %s price", slug, store)
	}
	p := r.Prices[i]
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %.2f %s (%s)\n", r.ID, p.Store, p.Price, p.Currency, p.LastUpdated)
	return nil
}
