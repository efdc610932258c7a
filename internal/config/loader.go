package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} references in config values.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and resolves
// default workspace paths. A missing file produces defaults only. A .env
// file in the working directory is honored before anything else.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // best-effort; a missing .env is fine

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
		}
		applyDefaults(&cfg)
	}

	applyEnvOverrides(&cfg)
	cfg.GitHub.Token = expandEnvVars(cfg.GitHub.Token)

	if err := resolveWorkspaceDefaults(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults fills zero-value fields after a YAML parse wiped them.
func applyDefaults(cfg *Config) {
	if cfg.GitHub.RateLimitThreshold == 0 {
		cfg.GitHub.RateLimitThreshold = 100
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "stdio"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides lets the environment win over the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		cfg.GitHub.Username = v
	}
	if v := os.Getenv("GITHUB_ORG"); v != "" {
		cfg.GitHub.Org = v
	}
	if v := os.Getenv("RATE_LIMIT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GitHub.RateLimitThreshold = n
		}
	}
	if v := os.Getenv("WORKSPACE_DIR"); v != "" {
		cfg.Workspace.Dir = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		cfg.Workspace.BackupDir = v
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
}

// resolveWorkspaceDefaults fills unset workspace roots with the standard
// home-relative locations.
func resolveWorkspaceDefaults(cfg *Config) error {
	if cfg.Workspace.Dir != "" && cfg.Workspace.BackupDir != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	if cfg.Workspace.Dir == "" {
		cfg.Workspace.Dir = filepath.Join(home, "workspace")
	}
	if cfg.Workspace.BackupDir == "" {
		cfg.Workspace.BackupDir = filepath.Join(home, "backups", "github")
	}
	return nil
}
