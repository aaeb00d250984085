package domain

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// ServiceAuth stores authentication information for an HTTP service the
// plugin talks to, such as the release notes generator.
type ServiceAuth struct {
	Type     AuthType // BasicAuth or TokenAuth
	Username string   // Used for basic auth
	Password string   // Used for basic auth
	Token    string   // Used for token auth
}

// ServiceAuthFromConfig converts an AuthConfig to ServiceAuth.
// A nil config yields nil.
func ServiceAuthFromConfig(authConfig *AuthConfig) *ServiceAuth {
	if authConfig == nil {
		return nil
	}
	return &ServiceAuth{
		Type:     ParseAuthType(authConfig.Type),
		Username: authConfig.Username,
		Password: authConfig.Password,
		Token:    authConfig.Token,
	}
}

// Validate checks that the fields required by the auth type are present.
func (a *ServiceAuth) Validate() error {
	switch a.Type {
	case BasicAuth:
		if a.Username == "" {
			return fmt.Errorf("username is required for basic authentication")
		}
		if a.Password == "" {
			return fmt.Errorf("password is required for basic authentication")
		}
	case TokenAuth:
		if a.Token == "" {
			return fmt.Errorf("token is required for token authentication")
		}
	default:
		return fmt.Errorf("invalid authentication type: %v", a.Type)
	}
	return nil
}

// NewAuthenticatedClient returns an HTTP client that authenticates every request with auth.
// A nil auth returns a plain client. The client has no timeout: the caller's
// context is the only way to bound a request.
func NewAuthenticatedClient(auth *ServiceAuth) (*http.Client, error) {
	if auth == nil {
		return &http.Client{}, nil
	}
	if err := auth.Validate(); err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &authenticatedTransport{
			base: http.DefaultTransport,
			auth: auth,
		},
	}, nil
}

// authenticatedTransport is an http.RoundTripper that adds authentication headers.
type authenticatedTransport struct {
	base http.RoundTripper
	auth *ServiceAuth
}

// RoundTrip implements http.RoundTripper by adding authentication headers to requests.
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())

	switch t.auth.Type {
	case BasicAuth:
		encoded := base64.StdEncoding.EncodeToString([]byte(t.auth.Username + ":" + t.auth.Password))
		clonedReq.Header.Set("Authorization", "Basic "+encoded)
	case TokenAuth:
		clonedReq.Header.Set("Authorization", "Bearer "+t.auth.Token)
	}

	return t.base.RoundTrip(clonedReq)
}
