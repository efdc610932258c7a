package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".gh-manager"

// Paths holds resolved filesystem paths for gh-manager's own data. The
// workspace and backup roots live in Config, not here; these are the tool's
// housekeeping directories.
type Paths struct {
	Base   string // ~/.gh-manager
	Config string // ~/.gh-manager/config.yaml
	Logs   string // ~/.gh-manager/logs
	Data   string // ~/.gh-manager/data
}

// ResolvePaths computes the standard paths from the home directory.
// GH_MANAGER_HOME overrides the base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("GH_MANAGER_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Logs:   filepath.Join(base, "logs"),
		Data:   filepath.Join(base, "data"),
	}, nil
}

// EnsureDirs creates the standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs, p.Data} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
