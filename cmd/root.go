// Package cmd implements the release-notes command line.
package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"release-notes-plugin/internal/application"
	"release-notes-plugin/internal/domain"
)

// options are the flags shared by every command.
type options struct {
	configPath string
}

// NewRootCommand builds the release-notes command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "release-notes",
		Short: "Release notes build step",
		Long: `Runs the release notes generator as a CI build step.

The step resolves git and Jira credentials for the job, assembles the
generator request and reports any failure in the build log without
failing the build.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "Path to configuration file")

	root.AddCommand(
		newPerformCommand(opts),
		newCheckCommand(),
		newCredentialsCommand(opts),
		newConfigureCommand(opts),
	)

	return root
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig loads and validates the global configuration.
func (o *options) loadConfig() (*domain.Config, error) {
	log.Printf("Loading configuration from: %s", o.configPath)
	return domain.LoadConfig(o.configPath)
}

// loadPlugin loads the configuration and wires the plugin.
func (o *options) loadPlugin(cmd *cobra.Command) (*application.Plugin, error) {
	config, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return application.NewPlugin(config, cmd.ErrOrStderr())
}
