package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	"triagem/internal/usecase/triage"
)

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a category and its defect vocabulary",
	Long:  "Deletes the category and every defect scoped to it. Recorded triage events are kept and keep referencing the deleted id.",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error {
		if err := requireMultiCategory(app); err != nil {
			return err
		}
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("id")

		if err := svc.DeleteCategory(ctx, categoryID); err != nil {
			return err
		}

		logging.Info(ctx, "category deleted", slog.Uint64("category_id", categoryID))
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted category %d\n", categoryID)
		return err
	}),
}

func init() {
	categoryCmd.AddCommand(categoryDeleteCmd)

	categoryDeleteCmd.Flags().Uint64("id", 0, "Category id")
	_ = categoryDeleteCmd.MarkFlagRequired("id")
}
