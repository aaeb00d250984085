package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"release-notes-plugin/internal/domain"
)

// ToggleReader reports whether source-control integration is enabled.
type ToggleReader interface {
	Enabled() bool
}

// CredentialResolver resolves credential ids within a security context.
type CredentialResolver interface {
	Resolve(ctx context.Context, id string, sc domain.SecurityContext) (*domain.ResolvedCredential, error)
}

// BuildContext is what the host job supplies for one build.
type BuildContext struct {
	JobName     string
	BuildNumber int
	Security    domain.SecurityContext
}

// ReleaseNotesStep runs the release notes generator as a build step.
// Failures never fail the enclosing job: they are written to the build log
// and returned as a contained failure.
type ReleaseNotesStep struct {
	config    domain.BuildStepConfiguration
	toggle    ToggleReader
	resolver  CredentialResolver
	generator domain.Generator
	logger    *slog.Logger
}

// NewReleaseNotesStep creates a release notes step for one job configuration.
// A nil logger discards operational logs.
func NewReleaseNotesStep(config domain.BuildStepConfiguration, toggle ToggleReader, resolver CredentialResolver, generator domain.Generator, logger *slog.Logger) *ReleaseNotesStep {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ReleaseNotesStep{
		config:    config,
		toggle:    toggle,
		resolver:  resolver,
		generator: generator,
		logger:    logger,
	}
}

// Perform runs the step the way the host expects: it always reports success.
func (s *ReleaseNotesStep) Perform(ctx context.Context, build BuildContext, buildLog io.Writer) bool {
	s.Run(ctx, build, buildLog)
	return true
}

// run holds the state of one execution.
type run struct {
	buildLog io.Writer
	logger   *slog.Logger
	result   StepResult
}

func (r *run) advance(state State) {
	r.logger.Debug("Release notes step state changed", "from", r.result.State(), "to", state)
	r.result.Path = append(r.result.Path, state)
}

func (r *run) println(msg string) {
	fmt.Fprintln(r.buildLog, msg)
}

func (r *run) fail(reason error, msg string) StepResult {
	r.println(msg)
	r.result.Outcome = OutcomeContainedFailure
	r.result.Reason = reason
	r.advance(StateContainedFailure)
	r.logger.Warn("Release notes step failed, build continues", "error", reason)
	return r.result
}

// Run executes the step and returns its result. It never panics on a
// generator failure and never returns an error to the host.
func (s *ReleaseNotesStep) Run(ctx context.Context, build BuildContext, buildLog io.Writer) StepResult {
	invocationID := domain.NewInvocationID()
	ctx = domain.WithInvocationID(ctx, invocationID)

	r := &run{
		buildLog: buildLog,
		logger: s.logger.With(
			"invocation_id", invocationID,
			"job", build.JobName,
			"build", build.BuildNumber,
		),
		result: StepResult{
			InvocationID: invocationID,
			Path:         []State{StateStart},
		},
	}

	r.advance(StatePreconditionCheck)
	if !s.toggle.Enabled() {
		return r.fail(domain.ErrUnsupportedProvider, domain.UnsupportedProviderMessage)
	}

	gitCredential, err := s.resolve(ctx, "git", s.config.GitCredentialsID, build.Security)
	if err != nil {
		return r.fail(err, err.Error())
	}
	jiraCredential, err := s.resolve(ctx, "jira", s.config.JiraCredentialsID, build.Security)
	if err != nil {
		return r.fail(err, err.Error())
	}
	r.println("Found git credentials " + gitCredential.Description)
	r.println("Found jira credentials " + jiraCredential.Description)
	r.advance(StateCredentialsResolved)

	builder := populate(domain.NewInvocationBuilder(s.generator), s.config, gitCredential, jiraCredential)
	if _, err := builder.Request(); err != nil {
		return r.fail(err, err.Error())
	}
	r.advance(StateRequestBuilt)

	r.logger.Info("Invoking release notes generator", "tag_start", s.config.Tag1, "tag_end", s.config.Tag2)
	err = invoke(ctx, builder)
	r.advance(StateInvoked)
	if err != nil {
		return r.fail(err, err.Error())
	}

	r.result.Outcome = OutcomeSuccess
	r.advance(StateSuccess)
	r.logger.Info("Release notes generated")
	return r.result
}

// resolve wraps resolution failures, panics included, in a CredentialError naming purpose.
func (s *ReleaseNotesStep) resolve(ctx context.Context, purpose, id string, sc domain.SecurityContext) (credential *domain.ResolvedCredential, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			credential = nil
			err = &domain.CredentialError{Purpose: purpose, ID: id, Err: fmt.Errorf("panic: %v", recovered)}
		}
	}()

	credential, err = s.resolver.Resolve(ctx, id, sc)
	if err != nil {
		return nil, &domain.CredentialError{Purpose: purpose, ID: id, Err: err}
	}
	if credential == nil {
		return nil, &domain.CredentialError{Purpose: purpose, ID: id, Err: domain.ErrCredentialNotFound}
	}
	return credential, nil
}

// populate sets every request field from the configuration and both credentials.
func populate(b *domain.InvocationBuilder, cfg domain.BuildStepConfiguration, git, jira *domain.ResolvedCredential) *domain.InvocationBuilder {
	return b.
		TagStart(cfg.Tag1).
		TagEnd(cfg.Tag2).
		PushReleaseNotes(cfg.PushReleaseNotes).
		GitDirectory(cfg.GitDirectory).
		GitBranch(cfg.GitBranch).
		GitURL(cfg.GitURL).
		GitUsername(git.Username).
		GitPassword(git.Password).
		GitCommitterName(cfg.GitCommitterName).
		GitCommitterMail(cfg.GitCommitterMail).
		GitCommitMessageValidationOmitter(cfg.GitCommitMessageValidationOmitter).
		JiraURL(cfg.JiraURL).
		JiraUsername(jira.Username).
		JiraPassword(jira.Password).
		JiraIssuePattern(cfg.JiraIssuePattern).
		IssueFilterByComponent(cfg.IssueFilterByComponent).
		IssueFilterByType(cfg.IssueFilterByType).
		IssueFilterByLabel(cfg.IssueFilterByLabel).
		IssueFilterByStatus(cfg.IssueFilterByStatus).
		IssueSortType(cfg.IssueSortType).
		IssueSortPriority(cfg.IssueSortPriority).
		ReportDirectory(cfg.ReportDirectory).
		ReportTemplate(cfg.ReportTemplate)
}

// invoke calls the generator and turns a panic into a GeneratorError.
func invoke(ctx context.Context, b *domain.InvocationBuilder) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &domain.GeneratorError{Err: fmt.Errorf("panic: %v", recovered)}
		}
	}()
	return b.Invoke(ctx)
}
