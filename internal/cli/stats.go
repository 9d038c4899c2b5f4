package cli

import (
	"fmt"
	"text/tabwriter"

	"a11y-detective/internal/catalog"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show question counts per ruleset version and tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			stats := cat.Stats()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tBEGINNER\tINTERMEDIATE\tADVANCED\tTOTAL")
			printCounts(w, "WCAG 2.1", stats.WCAG21)
			printCounts(w, "WCAG 2.2", stats.WCAG22)
			printCounts(w, "Combined", stats.Combined)
			return w.Flush()
		},
	}
}

func printCounts(w *tabwriter.Writer, label string, c catalog.TierCounts) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", label, c.Beginner, c.Intermediate, c.Advanced, c.Total)
}
