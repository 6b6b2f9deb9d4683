package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/usecase/triage"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage product categories",
}

// requireMultiCategory gates category management behind the deployment
// variant flag. Single-category deployments keep the registry fixed.
func requireMultiCategory(app *bootstrap.App) error {
	if !app.Config.Triage.MultiCategory {
		return errors.New("category management is disabled (triage.multi_category=false)")
	}
	return nil
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered categories in creation order",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error {
		if err := requireMultiCategory(app); err != nil {
			return err
		}
		categories, err := svc.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		for _, category := range categories {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", category.CategoryID, category.Icon, category.Name); err != nil {
				return err
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd)
}
