package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/store"
	"github.com/soyeahso/gh-manager/internal/version"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show gh-manager status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("gh-manager %s (commit %s)\n\n", version.Version, version.Commit)

			// Show paths
			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Data:    %s\n", paths.Data)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			// Load config; a missing file just yields defaults
			cfg, err := config.Load(paths.Config)
			if err != nil {
				fmt.Printf("Config:  error loading: %v\n", err)
				return nil
			}

			fmt.Print(cfg.Summary())
			fmt.Printf("- Transport: %s\n", cfg.Server.Transport)
			if cfg.Server.Transport == "sse" {
				fmt.Printf("- Listen: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			}

			// Credentials
			if err := config.RequireCredentials(&cfg); err != nil {
				fmt.Printf("\nCredentials: %v\n", err)
			} else {
				fmt.Println("\nCredentials: configured")
			}

			// Backup catalog
			dbPath := filepath.Join(paths.Data, "gh-manager.db")
			if _, err := os.Stat(dbPath); err == nil {
				db, err := store.Open(dbPath, log)
				if err != nil {
					fmt.Printf("Backups: error opening catalog: %v\n", err)
				} else {
					defer db.Close()
					n, err := store.NewBackupStore(db).Count()
					if err != nil {
						fmt.Printf("Backups: error reading catalog: %v\n", err)
					} else {
						fmt.Printf("Backups: %d recorded\n", n)
					}
				}
			} else {
				fmt.Println("Backups: no catalog yet")
			}

			// Validation
			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
