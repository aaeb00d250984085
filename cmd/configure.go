package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigureCommand(opts *options) *cobra.Command {
	var useGit bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Change the global step configuration",
		Long: `Saves the global configuration of the release notes step. Without
--use-git the current value is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin, err := opts.loadPlugin(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("use-git") {
				if err := plugin.Descriptor.Configure(useGit); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "use_git: %t\n", plugin.Descriptor.UseGit())
			return nil
		},
	}

	cmd.Flags().BoolVar(&useGit, "use-git", false, "Enable git as the source-control provider")

	return cmd
}
