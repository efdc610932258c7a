package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid. Credential
// presence is checked separately by RequireCredentials because only serving
// and API-touching commands need it.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	validTransports := []string{"stdio", "sse"}
	if cfg.Server.Transport != "" && !slices.Contains(validTransports, cfg.Server.Transport) {
		issues = append(issues, ValidationIssue{
			Path:    "server.transport",
			Message: fmt.Sprintf("must be one of %v, got %q", validTransports, cfg.Server.Transport),
		})
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validLogLevels := []string{"silent", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	if cfg.GitHub.RateLimitThreshold < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "github.rateLimitThreshold",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.GitHub.RateLimitThreshold),
		})
	}

	return issues
}

// RequireCredentials fails when the hosting-API token or account name is
// missing. Commands that talk to the API treat this as startup-fatal.
func RequireCredentials(cfg *Config) error {
	if cfg.GitHub.Token == "" {
		return &ConfigError{Message: "GITHUB_TOKEN is required"}
	}
	if cfg.GitHub.Username == "" {
		return &ConfigError{Message: "GITHUB_USERNAME is required"}
	}
	return nil
}
