package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"triagem/internal/bootstrap"
	"triagem/internal/bootstrap/logging"
	"triagem/internal/usecase/triage"
)

var defectCmd = &cobra.Command{
	Use:   "defect",
	Short: "Manage the defect vocabulary of a category",
}

var defectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List defects of a category in insertion order",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *triage.Service) error {
		categoryID, _ := cmd.Flags().GetUint64("category")

		labels, err := svc.Defects(cmd.Context(), categoryID)
		if err != nil {
			return err
		}

		for _, label := range labels {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), label); err != nil {
				return err
			}
		}
		return nil
	}),
}

var defectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a defect label (duplicates are ignored)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *triage.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("category")
		label, _ := cmd.Flags().GetString("label")

		if err := svc.AddDefect(ctx, categoryID, label); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "defect %q available in category %d\n", label, categoryID)
		return err
	}),
}

var defectRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a defect label (no-op when absent)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *triage.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		categoryID, _ := cmd.Flags().GetUint64("category")
		label, _ := cmd.Flags().GetString("label")

		if err := svc.RemoveDefect(ctx, categoryID, label); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "defect %q removed from category %d\n", label, categoryID)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(defectCmd)
	defectCmd.AddCommand(defectListCmd)
	defectCmd.AddCommand(defectAddCmd)
	defectCmd.AddCommand(defectRemoveCmd)

	for _, sub := range []*cobra.Command{defectListCmd, defectAddCmd, defectRemoveCmd} {
		// Default 1 is the fixed category of single-category deployments.
		sub.Flags().Uint64("category", 1, "Category id")
	}
	defectAddCmd.Flags().String("label", "", "Defect label")
	defectRemoveCmd.Flags().String("label", "", "Defect label")
	_ = defectAddCmd.MarkFlagRequired("label")
	_ = defectRemoveCmd.MarkFlagRequired("label")
}
