package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	domaintriage "triagem/internal/domain/triage"
	"triagem/internal/usecase/triage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent triage events, newest first",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error {
		categoryID, _ := cmd.Flags().GetUint64("category")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = app.Config.Triage.HistoryLimit
		}

		events, err := svc.RecentEvents(cmd.Context(), categoryID, limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "HORA\tCÓDIGO\tSERIAL\tDEFEITO")
		for _, event := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				domaintriage.TimeOfDay(event.RecordedAt),
				event.InternalCode,
				event.SerialNumber,
				event.DefectLabel,
			)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Uint64("category", 1, "Category id")
	historyCmd.Flags().Int("limit", 0, "Max events to show (default: triage.history_limit)")
}
