package commands

import (
	"fmt"

	"dealboard/internal/report"
	"dealboard/internal/stats"
	"dealboard/internal/visuals"

	"github.com/spf13/cobra"
)

var ganttFlags struct {
	deal   string
	status string
}

var ganttCmd = &cobra.Command{
	Use:   "gantt <deals-tasks> [appointments]",
	Short: "Print the Mermaid Gantt timeline of one deal",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := loadRelations(args)
		if err != nil {
			return err
		}
		deal, ok := stats.FindDeal(rel.Deals, ganttFlags.deal)
		if !ok {
			return fmt.Errorf("deal %q not found", ganttFlags.deal)
		}

		view := report.BuildDealView(rel, deal, ganttFlags.status, cfg.Now())
		if view.Timeline.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No valid data to display in the timeline.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", visuals.FormatWindow(view.Timeline.WindowStart, view.Timeline.WindowEnd),
			visuals.GenerateGanttChart(view.Timeline))
		return nil
	},
}

func init() {
	ganttCmd.Flags().StringVar(&ganttFlags.deal, "deal", "", "deal identifier (Regarding)")
	ganttCmd.Flags().StringVar(&ganttFlags.status, "status", "", "only chart tasks with this status")
	_ = ganttCmd.MarkFlagRequired("deal")
	rootCmd.AddCommand(ganttCmd)
}
