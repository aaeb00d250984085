package domain

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestServiceAuthFromConfig tests converting configuration into service auth.
func TestServiceAuthFromConfig(t *testing.T) {
	if got := ServiceAuthFromConfig(nil); got != nil {
		t.Errorf("expected nil auth for nil config, got %+v", got)
	}

	auth := ServiceAuthFromConfig(&AuthConfig{Type: "token", Token: "abc"})
	if auth.Type != TokenAuth {
		t.Errorf("expected TokenAuth, got %v", auth.Type)
	}
	if auth.Token != "abc" {
		t.Errorf("expected token 'abc', got '%s'", auth.Token)
	}
}

// TestServiceAuth_Validate tests validation of service auth for each auth type.
func TestServiceAuth_Validate(t *testing.T) {
	tests := []struct {
		name    string
		auth    ServiceAuth
		wantErr bool
	}{
		{"valid basic", ServiceAuth{Type: BasicAuth, Username: "u", Password: "p"}, false},
		{"basic without username", ServiceAuth{Type: BasicAuth, Password: "p"}, true},
		{"basic without password", ServiceAuth{Type: BasicAuth, Username: "u"}, true},
		{"valid token", ServiceAuth{Type: TokenAuth, Token: "t"}, false},
		{"token without token", ServiceAuth{Type: TokenAuth}, true},
		{"unknown type", ServiceAuth{Type: AuthType(99)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewAuthenticatedClient_BasicAuth tests that basic auth headers are sent.
func TestNewAuthenticatedClient_BasicAuth(t *testing.T) {
	client, err := NewAuthenticatedClient(&ServiceAuth{Type: BasicAuth, Username: "user", Password: "pass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != expectedAuth {
			t.Errorf("expected Authorization header '%s', got '%s'", expectedAuth, auth)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, _ := http.NewRequest("GET", server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error making request: %v", err)
	}
	defer resp.Body.Close()

	if req.Header.Get("Authorization") != "" {
		t.Error("expected original request to be left unmodified")
	}
}

// TestNewAuthenticatedClient_TokenAuth tests that bearer tokens are sent.
func TestNewAuthenticatedClient_TokenAuth(t *testing.T) {
	client, err := NewAuthenticatedClient(&ServiceAuth{Type: TokenAuth, Token: "my-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer my-token" {
			t.Errorf("expected Authorization header 'Bearer my-token', got '%s'", auth)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error making request: %v", err)
	}
	resp.Body.Close()
}

// TestNewAuthenticatedClient_NoAuth tests that a nil auth yields an unauthenticated client.
func TestNewAuthenticatedClient_NoAuth(t *testing.T) {
	client, err := NewAuthenticatedClient(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Timeout != 0 {
		t.Errorf("expected no client timeout, got %v", client.Timeout)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no Authorization header, got '%s'", auth)
		}
	}))
	defer server.Close()

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error making request: %v", err)
	}
	resp.Body.Close()
}

// TestNewAuthenticatedClient_InvalidAuth tests that invalid auth is rejected up front.
func TestNewAuthenticatedClient_InvalidAuth(t *testing.T) {
	if _, err := NewAuthenticatedClient(&ServiceAuth{Type: BasicAuth, Username: "user"}); err == nil {
		t.Fatal("expected error for basic auth without password")
	}
}
