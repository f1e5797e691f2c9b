package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scantidy/internal/report"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check SUBJECT...",
		Short: "Audit subjects and print the review report without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, store, err := ctx.newEngine()
			if err != nil {
				return err
			}
			defer store.Close()

			var summaries []report.Summary
			var failures []string
			for _, subject := range args {
				result, err := eng.Run(cmd.Context(), subject)
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", subject, err))
					continue
				}
				summaries = append(summaries, report.BuildSummary(result))
			}

			if jsonOutput {
				if err := writeJSON(cmd, summaries); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for i, summary := range summaries {
					if i > 0 {
						fmt.Fprintln(out)
					}
					printSectionHeader(out, summary.Subject)
					report.Render(out, summary)
				}
			}

			return failuresError(cmd, failures)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the review summary as JSON")
	return cmd
}

// failuresError prints per-subject failures and returns an aggregate error so
// the process exits non-zero; successful subjects are still reported.
func failuresError(cmd *cobra.Command, failures []string) error {
	if len(failures) == 0 {
		return nil
	}
	for _, failure := range failures {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", failure)
	}
	return fmt.Errorf("%d subject(s) failed", len(failures))
}
