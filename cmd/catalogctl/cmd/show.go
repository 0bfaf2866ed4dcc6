package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"padel-catalog/internal/catalog/model"
	"padel-catalog/internal/config"
)

var showBrand string

var showCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "List rackets, or print one racket with its prices",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showBrand, "brand", "", "only this brand (list mode)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := config.SetupCLILogger(cfg)

	cat, closeFn, err := openCatalog(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		r, ok := cat.Get(args[0])
		if !ok {
			return fmt.Errorf("racket %q not found", args[0])
		}
		if flagJSON {
			return printJSON(out, r)
		}
		printRacket(cmd, r)
		return nil
	}

	var list []*model.Racket
	for _, r := range cat.List() {
		if showBrand == "" || strings.EqualFold(r.Brand, showBrand) {
			list = append(list, r)
		}
	}
	if flagJSON {
		if list == nil {
			list = []*model.Racket{}
		}
		return printJSON(out, list)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tBRAND\tMODEL\tSTORES\tFROM")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Brand, r.Model, len(r.Prices), lowest(r))
	}
	return tw.Flush()
}

func printRacket(cmd *cobra.Command, r *model.Racket) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n  brand: %s\n  model: %s\n", r.ID, r.Brand, r.Model)
	if r.Description != "" {
		fmt.Fprintf(out, "  description: %s\n", r.Description)
	}
	keys := make([]string, 0, len(r.Specs))
	for k := range r.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, r.Specs[k])
	}
	fmt.Fprintf(out, "  images: %d\n", len(r.Images))
	for _, p := range r.Prices {
		fmt.Fprintf(out, "  - %s %.2f %s  %s  (%s)\n", p.Store, p.Price, p.Currency, p.URL, p.LastUpdated)
	}
}

func lowest(r *model.Racket) string {
	if len(r.Prices) == 0 {
		return "-"
	}
	best := r.Prices[0]
	for _, p := range r.Prices[1:] {
		if p.Price < best.Price {
			best = p
		}
	}
	return fmt.Sprintf("%.2f %s", best.Price, best.Currency)
}
