package commands

import (
	"fmt"
	"text/tabwriter"

	"dealboard/internal/stats"
	"dealboard/internal/visuals"

	"github.com/spf13/cobra"
)

var cohortsChart bool

var cohortsCmd = &cobra.Command{
	Use:   "cohorts <deals-tasks> [appointments]",
	Short: "Summarise deals per cohort",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := loadRelations(args)
		if err != nil {
			return err
		}
		summaries := stats.SummarizeAll(rel.Deals)

		out := cmd.OutOrStdout()
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COHORT\tDEALS\tHOMESITES\tMEDIAN DAYS TO IP EXPIRATION")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\n", s.Label, s.Deals, s.Homesites, s.MedianDaysToIPExpiration)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if len(rel.Unlinked) > 0 {
			fmt.Fprintf(out, "\n%d appointments reference unknown deals\n", len(rel.Unlinked))
		}
		if cohortsChart {
			fmt.Fprintf(out, "\n%s", visuals.GenerateCohortChart(summaries))
		}
		return nil
	},
}

func init() {
	cohortsCmd.Flags().BoolVar(&cohortsChart, "chart", false, "also print the Mermaid cohort chart")
	rootCmd.AddCommand(cohortsCmd)
}
