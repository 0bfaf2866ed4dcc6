package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"padel-catalog/internal/catalog/service"
)

var compareCmd = &cobra.Command{
	Use:   "compare <name-a> <name-b>",
	Short: "Show how the matcher sees two product names",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	c := service.Compare(args[0], args[1], loadConfig().MatchThreshold)
	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, c)
	}
	for _, s := range []service.Side{c.A, c.B} {
		fmt.Fprintf(out, "%q\n  normalized: %s\n  key:        %s\n  clean:      %s\n  year:       %d\n  suffixes:   [%s]\n",
			s.Name, s.Normalized, s.Key, s.Clean, s.Year, strings.Join(s.Suffixes, " "))
		if s.RescuedFrom != "" {
			fmt.Fprintf(out, "  brand:      %s\n", s.RescuedFrom)
		}
	}
	fmt.Fprintf(out, "levenshtein %.3f  jaccard %.3f  keywords ok %t\n", c.Levenshtein, c.Jaccard, c.KeywordsOK)
	if !c.Compatible {
		fmt.Fprintln(out, "incompatible (year or variant mismatch)")
		return nil
	}
	fmt.Fprintf(out, "score %.1f / threshold %.1f -> match %t\n", c.Score, c.Threshold, c.WouldMatch)
	return nil
}
