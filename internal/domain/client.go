package domain

import (
	"net/http"
)

// ServiceClient defines common operations for the HTTP services the plugin
// calls. The generator client implements it to provide authenticated API access.
type ServiceClient interface {
	// BaseURL returns the configured base URL for the service.
	BaseURL() string

	// Do executes an HTTP request with authentication.
	// The request should already be constructed with the appropriate
	// method, path and body. This method adds the common headers and
	// executes the request.
	Do(req *http.Request) (*http.Response, error)
}
