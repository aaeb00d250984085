package application

import (
	"fmt"
	"io"
	"log/slog"

	"release-notes-plugin/internal/domain"
	"release-notes-plugin/internal/infrastructure"
)

// Plugin wires the release notes step to its collaborators: the credential
// store, the persisted toggle and the generator service.
type Plugin struct {
	Config      *domain.Config
	Toggle      *domain.GlobalToggle
	Credentials *infrastructure.FileCredentialStore
	Generator   domain.Generator
	Service     domain.ServiceClient // the generator's HTTP side
	Descriptor  *Descriptor
	Logger      *slog.Logger
}

// NewPlugin builds a Plugin from a validated configuration. The toggle is
// loaded from its state file before the plugin is returned.
func NewPlugin(config *domain.Config, logOutput io.Writer) (*Plugin, error) {
	logger := NewLogger(config.Log, logOutput)

	toggle := domain.NewGlobalToggle(infrastructure.NewFileToggleStore(config.StateFile), config.UseGit)
	if err := toggle.Load(); err != nil {
		return nil, err
	}
	logger.Debug("Source-control toggle loaded", "use_git", toggle.Enabled())

	store, err := infrastructure.OpenFileCredentialStore(config.CredentialsFile)
	if err != nil {
		return nil, err
	}

	httpClient, err := domain.NewAuthenticatedClient(domain.ServiceAuthFromConfig(config.Generator.Auth))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator client: %w", err)
	}

	generator := infrastructure.NewGeneratorClient(config.Generator.BaseURL, httpClient)
	logServiceClient(logger, "generator", generator)

	return &Plugin{
		Config:      config,
		Toggle:      toggle,
		Credentials: store,
		Generator:   generator,
		Service:     generator,
		Descriptor:  NewDescriptor(toggle, store),
		Logger:      logger,
	}, nil
}

func logServiceClient(logger *slog.Logger, name string, client domain.ServiceClient) {
	logger.Debug("Service client configured", "service", name, "base_url", client.BaseURL())
}

// Step returns a release notes step for one job configuration.
func (p *Plugin) Step(job domain.BuildStepConfiguration) *ReleaseNotesStep {
	return NewReleaseNotesStep(job, p.Toggle, domain.NewCredentialResolver(p.Credentials), p.Generator, p.Logger)
}
