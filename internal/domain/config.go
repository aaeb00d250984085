package domain

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the plugin's global configuration.
// This is the root configuration structure loaded from YAML files.
type Config struct {
	// UseGit is the initial value of the source-control toggle, used when no
	// toggle state has been saved yet.
	UseGit          bool            `yaml:"use_git"`
	StateFile       string          `yaml:"state_file"`
	CredentialsFile string          `yaml:"credentials_file"`
	Generator       GeneratorConfig `yaml:"generator"`
	Log             LogConfig       `yaml:"log,omitempty"`
}

// GeneratorConfig defines how to reach the external release notes generator.
type GeneratorConfig struct {
	BaseURL string      `yaml:"base_url"`
	Auth    *AuthConfig `yaml:"auth,omitempty"` // Optional - the generator may not require authentication
}

// AuthConfig defines authentication settings.
// Supports both basic authentication and token-based authentication.
type AuthConfig struct {
	Type     string `yaml:"type"` // "basic" or "token"
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// LogConfig defines operational logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn" or "error"
	Format string `yaml:"format"` // "text" or "json"
}

// AuthType defines supported authentication methods.
type AuthType int

const (
	// BasicAuth uses username and password authentication
	BasicAuth AuthType = iota
	// TokenAuth uses personal access token authentication
	TokenAuth
)

// String returns the string representation of AuthType.
func (a AuthType) String() string {
	switch a {
	case BasicAuth:
		return "basic"
	case TokenAuth:
		return "token"
	default:
		return "unknown"
	}
}

// ParseAuthType converts a string to AuthType.
func ParseAuthType(s string) AuthType {
	switch s {
	case "basic":
		return BasicAuth
	case "token":
		return TokenAuth
	default:
		return BasicAuth
	}
}

// LoadConfig reads and validates configuration from a YAML file.
// Returns an error if the file is missing, has invalid syntax, or fails validation.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if c.StateFile == "" {
		errors = append(errors, "state_file is required")
	}
	if c.CredentialsFile == "" {
		errors = append(errors, "credentials_file is required")
	}

	if err := c.Generator.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.Log.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates the generator configuration.
func (gc *GeneratorConfig) Validate() error {
	var errors []string

	if gc.BaseURL == "" {
		errors = append(errors, "generator base_url is required")
	} else {
		parsedURL, err := url.Parse(gc.BaseURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("generator base_url is invalid: %v", err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, "generator base_url must use http or https scheme")
		} else if parsedURL.Host == "" {
			errors = append(errors, "generator base_url must include a host")
		}
	}

	if gc.Auth != nil {
		if err := gc.Auth.Validate("generator"); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates authentication configuration.
func (ac *AuthConfig) Validate(name string) error {
	var errors []string

	if ac.Type == "" {
		errors = append(errors, fmt.Sprintf("%s auth type is required", name))
	} else if ac.Type != "basic" && ac.Type != "token" {
		errors = append(errors, fmt.Sprintf("%s auth type '%s' is invalid: must be 'basic' or 'token'", name, ac.Type))
	}

	if ac.Type == "basic" {
		if ac.Username == "" {
			errors = append(errors, fmt.Sprintf("%s username is required for basic auth", name))
		}
		if ac.Password == "" {
			errors = append(errors, fmt.Sprintf("%s password is required for basic auth", name))
		}
	} else if ac.Type == "token" {
		if ac.Token == "" {
			errors = append(errors, fmt.Sprintf("%s token is required for token auth", name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates the logging configuration. Empty values are allowed
// and fall back to info level and text format.
func (lc *LogConfig) Validate() error {
	var errors []string

	switch lc.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be 'debug', 'info', 'warn' or 'error'", lc.Level))
	}

	switch lc.Format {
	case "", "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", lc.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
