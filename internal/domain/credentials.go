package domain

import (
	"context"
	"fmt"
	"strings"
)

// CredentialKind identifies the type of secret material a stored credential holds.
type CredentialKind string

const (
	KindUsernamePassword CredentialKind = "username_password"
	KindSecretText       CredentialKind = "secret_text"
	KindCertificate      CredentialKind = "certificate"
	KindSSHKey           CredentialKind = "ssh_key"
)

// Valid reports whether k is a known credential kind.
func (k CredentialKind) Valid() bool {
	switch k {
	case KindUsernamePassword, KindSecretText, KindCertificate, KindSSHKey:
		return true
	default:
		return false
	}
}

// Credential is an entry of the credential store.
// Scope is a folder path; an empty scope makes the credential global.
type Credential struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description,omitempty"`
	Kind        CredentialKind `yaml:"kind"`
	Scope       string         `yaml:"scope,omitempty"`
	Username    string         `yaml:"username,omitempty"`
	Password    string         `yaml:"password,omitempty"`
	Secret      string         `yaml:"secret,omitempty"` // secret_text, certificate and ssh_key material
}

// Permission is a right granted to the principal running a build or editing a job.
type Permission string

const (
	PermissionBuild     Permission = "item.build"
	PermissionConfigure Permission = "item.configure"
)

// SecurityContext is the permission scope of the executing job.
type SecurityContext struct {
	ItemPath    string // slash separated path of the job, e.g. "team-a/service-x"
	Principal   string
	Permissions []Permission
}

// HasPermission reports whether the context grants p.
func (sc SecurityContext) HasPermission(p Permission) bool {
	for _, granted := range sc.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// CanSee reports whether a credential stored under scope is visible to the context.
// The item sees global credentials and those of every enclosing folder.
func (sc SecurityContext) CanSee(scope string) bool {
	scope = strings.Trim(scope, "/")
	if scope == "" {
		return true
	}
	item := strings.Trim(sc.ItemPath, "/")
	return item == scope || strings.HasPrefix(item, scope+"/")
}

// CredentialMatcher is a predicate over stored credentials.
// Matchers compose with AnyOf, AllOf and Not.
type CredentialMatcher func(Credential) bool

// InstanceOf matches credentials of the given kind.
func InstanceOf(kind CredentialKind) CredentialMatcher {
	return func(c Credential) bool {
		return c.Kind == kind
	}
}

// WithID matches the credential with the given id.
func WithID(id string) CredentialMatcher {
	return func(c Credential) bool {
		return c.ID == id
	}
}

// AnyOf matches when at least one matcher matches.
func AnyOf(matchers ...CredentialMatcher) CredentialMatcher {
	return func(c Credential) bool {
		for _, m := range matchers {
			if m(c) {
				return true
			}
		}
		return false
	}
}

// AllOf matches when every matcher matches.
func AllOf(matchers ...CredentialMatcher) CredentialMatcher {
	return func(c Credential) bool {
		for _, m := range matchers {
			if !m(c) {
				return false
			}
		}
		return true
	}
}

// Not inverts a matcher.
func Not(m CredentialMatcher) CredentialMatcher {
	return func(c Credential) bool {
		return !m(c)
	}
}

// UsernamePasswordMatcher selects the credentials the release notes step can use.
var UsernamePasswordMatcher = AnyOf(InstanceOf(KindUsernamePassword))

// Filter returns the credentials accepted by m, preserving order.
func Filter(credentials []Credential, m CredentialMatcher) []Credential {
	var matched []Credential
	for _, c := range credentials {
		if m(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// CredentialStore gives access to stored credentials.
type CredentialStore interface {
	// Credentials returns every credential visible to sc, in a stable order.
	Credentials(ctx context.Context, sc SecurityContext) ([]Credential, error)
}

// ResolvedCredential is a username/password pair ready to be used by one invocation.
type ResolvedCredential struct {
	Username    string
	Password    string
	Description string
}

// String renders the credential without its password.
func (rc ResolvedCredential) String() string {
	return fmt.Sprintf("%s (%s, password: ****)", rc.Description, rc.Username)
}

// GoString renders the credential without its password for %#v.
func (rc ResolvedCredential) GoString() string {
	return fmt.Sprintf("domain.ResolvedCredential{Username:%q, Password:\"****\", Description:%q}", rc.Username, rc.Description)
}

// CredentialResolver resolves credential ids to username/password pairs.
type CredentialResolver struct {
	store   CredentialStore
	matcher CredentialMatcher
}

// NewCredentialResolver creates a resolver that accepts only username/password credentials.
func NewCredentialResolver(store CredentialStore) *CredentialResolver {
	return &CredentialResolver{
		store:   store,
		matcher: UsernamePasswordMatcher,
	}
}

// Resolve looks up id among the username/password credentials visible to sc.
// Missing, out-of-scope and wrong-kind credentials all yield ErrCredentialNotFound.
func (r *CredentialResolver) Resolve(ctx context.Context, id string, sc SecurityContext) (*ResolvedCredential, error) {
	if id == "" {
		return nil, ErrCredentialNotFound
	}

	visible, err := r.store.Credentials(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to query credential store: %w", err)
	}

	for _, c := range Filter(visible, r.matcher) {
		// Rechecked here since stores are not required to scope their results.
		if c.ID == id && sc.CanSee(c.Scope) {
			return &ResolvedCredential{
				Username:    c.Username,
				Password:    c.Password,
				Description: c.Description,
			}, nil
		}
	}

	return nil, ErrCredentialNotFound
}
