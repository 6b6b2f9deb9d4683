package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	"triagem/internal/usecase/triage"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one triage event",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *triage.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("category")
		code, _ := cmd.Flags().GetString("code")
		serial, _ := cmd.Flags().GetString("serial")
		defect, _ := cmd.Flags().GetString("defect")

		event, err := svc.Record(ctx, triage.RecordInput{
			CategoryID:   categoryID,
			InternalCode: code,
			SerialNumber: serial,
			DefectLabel:  defect,
		})
		if err != nil {
			return err
		}

		logging.Info(ctx, "triage event recorded",
			slog.Uint64("event_id", event.EventID),
			slog.String("internal_code", event.InternalCode),
			slog.String("defect", event.DefectLabel),
		)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded #%d: %s -> %s at %s\n",
			event.EventID, event.InternalCode, event.DefectLabel, event.RecordedAt)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().Uint64("category", 1, "Category id")
	recordCmd.Flags().String("code", "", "Internal code (scanned)")
	recordCmd.Flags().String("serial", "", "Serial number (optional)")
	recordCmd.Flags().String("defect", "", "Defect label, must exist in the category vocabulary")
	_ = recordCmd.MarkFlagRequired("defect")
}
