package application

import (
	"context"
	"fmt"

	"release-notes-plugin/internal/domain"
)

// DisplayName is the human-readable name of the release notes step.
const DisplayName = "Release notes plugin"

// CredentialOption is one entry of a credential selection list.
// The empty selection has an empty Value.
type CredentialOption struct {
	Name  string
	Value string
}

// Descriptor is the configuration-time side of the release notes step: field
// checks, credential option lists and the global toggle.
type Descriptor struct {
	toggle *domain.GlobalToggle
	store  domain.CredentialStore
}

// NewDescriptor creates a descriptor over the global toggle and the credential store.
func NewDescriptor(toggle *domain.GlobalToggle, store domain.CredentialStore) *Descriptor {
	return &Descriptor{
		toggle: toggle,
		store:  store,
	}
}

// DisplayName returns the name shown in the configuration screen.
func (d *Descriptor) DisplayName() string {
	return DisplayName
}

// IsApplicable reports whether the step can be added to a job of the given kind.
// Every job kind is supported.
func (d *Descriptor) IsApplicable(jobKind string) bool {
	return true
}

// CheckGitDirectory validates the git directory field while it is edited.
func (d *Descriptor) CheckGitDirectory(value string) domain.ValidationResult {
	return domain.ValidateRequiredPath(value)
}

// UseGit reports whether source-control integration is enabled.
func (d *Descriptor) UseGit() bool {
	return d.toggle.Enabled()
}

// Configure saves the global configuration submitted by an administrator.
func (d *Descriptor) Configure(useGit bool) error {
	return d.toggle.Configure(useGit)
}

// FillGitCredentialsItems lists the credentials selectable for the git credential field.
// A context without the configure permission gets an empty list.
func (d *Descriptor) FillGitCredentialsItems(ctx context.Context, sc domain.SecurityContext) ([]CredentialOption, error) {
	if !sc.HasPermission(domain.PermissionConfigure) {
		return []CredentialOption{}, nil
	}

	visible, err := d.store.Credentials(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	options := []CredentialOption{{Name: "- none -", Value: ""}}
	for _, c := range domain.Filter(visible, domain.UsernamePasswordMatcher) {
		name := c.Description
		if name == "" {
			name = c.ID
		}
		options = append(options, CredentialOption{Name: name, Value: c.ID})
	}
	return options, nil
}

// FillJiraCredentialsItems lists the credentials selectable for the jira credential field.
func (d *Descriptor) FillJiraCredentialsItems(ctx context.Context, sc domain.SecurityContext) ([]CredentialOption, error) {
	return d.FillGitCredentialsItems(ctx, sc)
}
