package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"padel-catalog/internal/config"
	"padel-catalog/internal/feedwatch"
)

var importStore string

var importCmd = &cobra.Command{
	Use:   "import <feed-file>...",
	Short: "Import store feed files (csv, xlsx, xls, json)",
	Long: "Resolves every product of each feed into the catalog. The store comes from --store,\n" +
		"otherwise from the file name prefix: padelnuestro__2025-03-01.csv -> padelnuestro.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importStore, "store", "", "store id for all files")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := config.SetupCLILogger(cfg)

	cat, closeFn, err := openCatalog(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	im := feedwatch.Importer{Catalog: cat, Log: log}
	var reports []feedwatch.Report
	for _, path := range args {
		rep, err := im.ImportFile(cmd.Context(), path, importStore)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, reports)
	}
	for _, r := range reports {
		fmt.Fprintf(out, "%s [%s]: %d rows, %d created, %d merged, %d excluded, %d invalid, %d skipped\n",
			r.File, r.Store, r.Rows, r.Created, r.Merged, r.Excluded, r.Invalid, len(r.Skipped))
	}
	fmt.Fprintf(out, "catalog: %d rackets\n", cat.Len())
	return nil
}
