package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	"triagem/internal/usecase/triage"
)

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a category with an initial defect vocabulary",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error {
		if err := requireMultiCategory(app); err != nil {
			return err
		}
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		name, _ := cmd.Flags().GetString("name")
		icon, _ := cmd.Flags().GetString("icon")
		defects, _ := cmd.Flags().GetStringArray("defect")

		category, err := svc.CreateCategory(ctx, name, icon, defects)
		if err != nil {
			return err
		}

		logging.Info(ctx, "category created", slog.Uint64("category_id", category.CategoryID))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "created category %d: %s %s\n", category.CategoryID, category.Icon, category.Name)
		return err
	}),
}

func init() {
	categoryCmd.AddCommand(categoryCreateCmd)

	categoryCreateCmd.Flags().String("name", "", "Category name")
	categoryCreateCmd.Flags().String("icon", "", "Icon, optionally with a descriptive suffix (only the glyph is stored)")
	categoryCreateCmd.Flags().StringArray("defect", nil, "Initial defect label (repeatable)")
	_ = categoryCreateCmd.MarkFlagRequired("name")
}
