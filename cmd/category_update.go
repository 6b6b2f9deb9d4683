package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	domaintriage "triagem/internal/domain/triage"
	"triagem/internal/usecase/triage"
)

var categoryUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rename or re-icon a category",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error {
		if err := requireMultiCategory(app); err != nil {
			return err
		}
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("id")
		name, _ := cmd.Flags().GetString("name")
		icon, _ := cmd.Flags().GetString("icon")

		if err := svc.UpdateCategory(ctx, categoryID, name, icon); err != nil {
			// A missing id is a warning, not a fatal failure.
			if errors.Is(err, domaintriage.ErrCategoryNotFound) {
				logging.Warn(ctx, "category not found", slog.Uint64("category_id", categoryID))
				_, werr := fmt.Fprintf(cmd.OutOrStdout(), "category %d not found, nothing updated\n", categoryID)
				return werr
			}
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "updated category %d\n", categoryID)
		return err
	}),
}

func init() {
	categoryCmd.AddCommand(categoryUpdateCmd)

	categoryUpdateCmd.Flags().Uint64("id", 0, "Category id")
	categoryUpdateCmd.Flags().String("name", "", "New category name")
	categoryUpdateCmd.Flags().String("icon", "", "New icon (only the glyph is stored)")
	_ = categoryUpdateCmd.MarkFlagRequired("id")
	_ = categoryUpdateCmd.MarkFlagRequired("name")
}
