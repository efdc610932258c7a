// Package config loads and validates gh-manager configuration from YAML and
// the environment.
package config

import (
	"fmt"
	"strings"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Config is the root configuration for gh-manager.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github,omitempty"`
	Workspace WorkspaceConfig `yaml:"workspace,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// GitHubConfig holds hosting-API credentials and limits. Token and Username
// are required; their absence is fatal at startup.
type GitHubConfig struct {
	Token              string `yaml:"token,omitempty"`
	Username           string `yaml:"username,omitempty"`
	Org                string `yaml:"org,omitempty"`
	RateLimitThreshold int    `yaml:"rateLimitThreshold,omitempty"`
}

// WorkspaceConfig holds the two filesystem roots: live clones and backups.
// Both are created lazily by the handlers that use them.
type WorkspaceConfig struct {
	Dir       string `yaml:"dir,omitempty"`
	BackupDir string `yaml:"backupDir,omitempty"`
}

// ServerConfig selects the transport and, for SSE, the listen address.
type ServerConfig struct {
	Transport string `yaml:"transport,omitempty"` // "stdio" | "sse"
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  bool   `yaml:"file,omitempty"` // also write to ~/.gh-manager/logs
}

// Defaults returns a Config with defaults applied. Workspace paths default
// relative to the home directory and are resolved in Load.
func Defaults() Config {
	return Config{
		GitHub: GitHubConfig{
			RateLimitThreshold: 100,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8000,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  true,
		},
	}
}

// Summary renders a human-readable configuration overview with the token
// redacted. Exposed through the config://github resource and the status
// command.
func (c Config) Summary() string {
	org := c.GitHub.Org
	if org == "" {
		org = "N/A"
	}
	var b strings.Builder
	b.WriteString("GitHub Configuration:\n")
	fmt.Fprintf(&b, "- Username: %s\n", c.GitHub.Username)
	fmt.Fprintf(&b, "- Organization: %s\n", org)
	fmt.Fprintf(&b, "- Rate Limit Threshold: %d\n", c.GitHub.RateLimitThreshold)
	fmt.Fprintf(&b, "- Workspace Directory: %s\n", c.Workspace.Dir)
	fmt.Fprintf(&b, "- Backup Directory: %s\n", c.Workspace.BackupDir)
	return b.String()
}
