package domain

import (
	"errors"
	"fmt"
)

// UnsupportedProviderMessage is written to the build log when source-control
// integration is disabled.
const UnsupportedProviderMessage = "We're very sorry but for now you can use only git as scm provider."

// Sentinel errors for the release notes step.
// Every one of them is contained by the orchestrator and ends up as a
// build log line; none of them fails the enclosing job.
var (
	// ErrUnsupportedProvider is reported when source-control integration is disabled.
	ErrUnsupportedProvider = errors.New("only git is supported as the source-control provider for now")

	// ErrCredentialNotFound is reported for empty, unknown, out-of-scope or wrong-kind credential ids.
	ErrCredentialNotFound = errors.New("credentials not found")

	// ErrIncompleteRequest is reported when Invoke is called before every field was set.
	ErrIncompleteRequest = errors.New("invocation request is incomplete")

	// ErrBuilderUsed is reported when an InvocationBuilder is invoked a second time.
	ErrBuilderUsed = errors.New("invocation builder has already been used")
)

// CredentialError describes a failed credential resolution.
// Purpose is the role of the credential in the build ("git" or "jira").
type CredentialError struct {
	Purpose string
	ID      string
	Err     error
}

// Error implements the error interface.
func (e *CredentialError) Error() string {
	if errors.Is(e.Err, ErrCredentialNotFound) {
		return fmt.Sprintf("%s credentials not found: %q", e.Purpose, e.ID)
	}
	return fmt.Sprintf("failed to resolve %s credentials %q: %v", e.Purpose, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *CredentialError) Unwrap() error {
	return e.Err
}

// GeneratorError wraps a failure raised by the external release notes generator.
type GeneratorError struct {
	Err error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	return fmt.Sprintf("release notes generation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *GeneratorError) Unwrap() error {
	return e.Err
}
