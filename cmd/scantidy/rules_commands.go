package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Maintain the scan-type rename rule table",
	}
	cmd.AddCommand(newRulesImportCommand(ctx))
	cmd.AddCommand(newRulesListCommand(ctx))
	return cmd
}

func newRulesImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import rules from a scan_type_renames.csv export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openRules()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.ImportCSV(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rule(s), %d duplicate(s) skipped\n", result.Added, result.Skipped)
			return nil
		},
	}
}

func newRulesListCommand(ctx *commandContext) *cobra.Command {
	var project string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored rename rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openRules()
			if err != nil {
				return err
			}
			defer store.Close()

			stored, err := store.List(cmd.Context(), project)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, stored)
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Project", "Series Description", "Current Type", "Updated Type"})
			for _, rule := range stored {
				tw.AppendRow(table.Row{rule.Project, rule.SeriesDescription, rule.CurrentType, rule.UpdatedType})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d rule(s)\n", len(stored))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by study prefix (e.g. LD4)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit rules as JSON")
	return cmd
}
