package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"dealboard/internal/crm"
	"dealboard/internal/export"
	"dealboard/internal/report"
	"dealboard/internal/stats"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reportFlags struct {
	cohort     string
	sortBy     string
	descending bool
	status     string
	search     string
	outDir     string
	open       bool
}

var reportCmd = &cobra.Command{
	Use:   "report <deals-tasks> [appointments]",
	Short: "Export the deal/task/appointment workbook for a cohort",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := loadRelations(args)
		if err != nil {
			return err
		}
		cohort, err := stats.ParseCohort(reportFlags.cohort)
		if err != nil {
			return err
		}

		now := cfg.Now()
		r, err := report.Build(rel, report.Options{
			Cohort:       cohort,
			SortBy:       reportFlags.sortBy,
			Descending:   reportFlags.descending,
			Search:       reportFlags.search,
			StatusFilter: reportFlags.status,
			Now:          now,
		})
		if err != nil {
			return err
		}

		dir := reportFlags.outDir
		if dir == "" {
			dir = cfg.ExportDir
		}
		path, err := export.WriteFile(dir, r, cfg.ColumnWidth, now)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d deals\n\n", cohort.Label(), len(r.Deals))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DEAL\tSTAGE\tGF SUBMITTAL\tCLOSING\tNOT STARTED\tIN PROGRESS\tCOMPLETED\tAPPOINTMENTS")
		for _, v := range r.Deals {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
				v.Deal.Regarding, v.Deal.Stage,
				crm.FormatDate(v.Deal.GFSubmittal), crm.FormatDate(v.Deal.ProjectedClosing),
				v.Counts.NotStarted, v.Counts.InProgress, v.Counts.Completed, len(v.Appointments))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if n := len(r.Warnings); n > 0 {
			fmt.Fprintf(out, "\n%d cells could not be read and were left empty (run with -v for details)\n", n)
		}
		fmt.Fprintf(out, "\nWorkbook written to %s\n", path)

		if reportFlags.open {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to open exported workbook")
			}
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.cohort, "cohort", "", "cohort to export: all, approved, in_schedule, pre_submittal, approval_without_submittal")
	f.StringVar(&reportFlags.sortBy, "sort", "", "deal column to sort by, e.g. "+strings.Join(stats.SortFields, ", "))
	f.BoolVar(&reportFlags.descending, "desc", false, "sort descending")
	f.StringVar(&reportFlags.status, "status", "", "only include tasks with this status")
	f.StringVar(&reportFlags.search, "deal", "", "only include the deal with this identifier")
	f.StringVar(&reportFlags.outDir, "out", "", "output directory (defaults to EXPORT_DIR)")
	f.BoolVar(&reportFlags.open, "open", false, "open the workbook with the default application")
	rootCmd.AddCommand(reportCmd)
}
