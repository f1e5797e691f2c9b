package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scantidy/internal/plan"
	"scantidy/internal/report"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "apply SUBJECT...",
		Short: "Build each subject's update plan and write it back to the repository",
		Long: `Build each subject's update plan and write it back to the repository.

Without --overwrite, a field that no longer holds the value observed when the
plan was built is skipped rather than clobbered, so hand-entered corrections
survive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, store, err := ctx.newEngine()
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			executor := plan.NewExecutor(client, logger)

			out := cmd.OutOrStdout()
			var reports []plan.Report
			var failures []string
			for _, subject := range args {
				result, err := eng.Run(cmd.Context(), subject)
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", subject, err))
					continue
				}
				if result.Plan.Empty() {
					if !jsonOutput {
						fmt.Fprintf(out, "%s: no changes to apply\n", subject)
					}
					continue
				}
				execReport := executor.Execute(cmd.Context(), result.Plan, overwrite)
				reports = append(reports, execReport)
				if execReport.Failed() {
					failures = append(failures, fmt.Sprintf("%s: %d item(s) failed", subject, execReport.Count(plan.OutcomeFailed)))
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				for _, execReport := range reports {
					printSectionHeader(out, execReport.Subject)
					report.RenderExecution(out, execReport)
				}
			}

			return failuresError(cmd, failures)
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Write even when the target field was changed after the snapshot")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the execution report as JSON")
	return cmd
}
