package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"release-notes-plugin/internal/domain"
)

func newCheckCommand() *cobra.Command {
	var jobPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a job's step configuration",
		Long: `Checks the fields of a job's step configuration and prints a warning
for each problem found. Warnings never make the command fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := domain.LoadJobConfiguration(jobPath, environ())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warnings := domain.ValidateConfiguration(job)
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s: %s\n", w.Field, w.Message)
			}
			if len(warnings) == 0 {
				fmt.Fprintln(out, "ok")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "release-notes.yaml", "Path to the job's step configuration (.yaml, .yml or .hcl)")

	return cmd
}
