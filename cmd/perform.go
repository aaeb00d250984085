package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"release-notes-plugin/internal/application"
	"release-notes-plugin/internal/domain"
)

func newPerformCommand(opts *options) *cobra.Command {
	var (
		jobPath     string
		jobName     string
		buildNumber int
		principal   string
	)

	cmd := &cobra.Command{
		Use:   "perform",
		Short: "Run the release notes step for a job",
		Long: `Runs the release notes step for the job described by --job.

The build log is written to stdout. The command succeeds even when release
notes could not be generated, including when the credentials or toggle state
files cannot be read; the reason is printed to the build log. Only an invalid
global configuration fails the command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Failures past this point are step failures and go to the build log.
			buildLog := cmd.OutOrStdout()
			plugin, err := application.NewPlugin(config, cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(buildLog, err.Error())
				log.Printf("Release notes step skipped: %v", err)
				return nil
			}

			job, err := domain.LoadJobConfiguration(jobPath, environ())
			if err != nil {
				fmt.Fprintln(buildLog, err.Error())
				return nil
			}

			build := application.BuildContext{
				JobName:     jobName,
				BuildNumber: buildNumber,
				Security: domain.SecurityContext{
					ItemPath:    jobName,
					Principal:   principal,
					Permissions: []domain.Permission{domain.PermissionBuild},
				},
			}

			result := plugin.Step(job).Run(cmd.Context(), build, buildLog)
			plugin.Logger.Info("Release notes step finished",
				"invocation_id", result.InvocationID,
				"outcome", result.Outcome.String(),
				"state", result.State().String(),
				"generator", plugin.Service.BaseURL(),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobPath, "job", "release-notes.yaml", "Path to the job's step configuration (.yaml, .yml or .hcl)")
	cmd.Flags().StringVar(&jobName, "job-name", os.Getenv("JOB_NAME"), "Full name of the job, used to scope credentials")
	cmd.Flags().IntVar(&buildNumber, "build-number", envInt("BUILD_NUMBER"), "Number of the running build")
	cmd.Flags().StringVar(&principal, "principal", os.Getenv("BUILD_USER_ID"), "Principal the build runs as")

	return cmd
}

// environ returns the process environment as a map.
func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}
	return env
}

func envInt(name string) int {
	n, _ := strconv.Atoi(os.Getenv(name))
	return n
}
