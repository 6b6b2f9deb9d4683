package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	domaintriage "triagem/internal/domain/triage"
	"triagem/internal/errs"
	"triagem/internal/usecase/triage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the triage history of a category as a spreadsheet",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *triage.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("category")
		outPath, _ := cmd.Flags().GetString("out")

		path, err := svc.ExportFile(ctx, categoryID, outPath)
		if err != nil {
			// An empty history is an outcome, not a failure.
			if errors.Is(err, domaintriage.ErrNothingToExport) {
				_, werr := fmt.Fprintln(cmd.OutOrStdout(), "nothing to export")
				return werr
			}
			logging.Error(ctx, "export failed", slog.Any("err", errs.Loggable(err)))
			return err
		}

		logging.Info(ctx, "report exported", slog.String("path", path))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "report written: %s\n", path)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Uint64("category", 1, "Category id")
	exportCmd.Flags().String("out", "", "Output file path (default: Relatorio_<category>_<date>.xlsx)")
}
