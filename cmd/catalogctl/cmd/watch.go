package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"padel-catalog/internal/config"
	"padel-catalog/internal/feedwatch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import feed files as they are written to a directory",
	Long: "Watches dir (default $FEED_DIR) and imports every <store>__<name>.<ext> feed\n" +
		"once writes to it settle. Stops on Ctrl+C.",
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if len(args) == 1 {
		cfg.FeedDir = args[0]
	}
	log := config.SetupCLILogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.FeedDir, 0o755); err != nil {
		return err
	}
	cat, closeFn, err := openCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	im := feedwatch.Importer{Catalog: cat, Log: log}
	w := feedwatch.Watcher{Dir: cfg.FeedDir, Log: log}
	return w.Run(ctx, func(path string) {
		if _, err := im.ImportFile(ctx, path, ""); err != nil {
			log.Error().Err(err).Str("file", path).Msg("feed import failed")
		}
	})
}
