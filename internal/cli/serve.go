package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/handlers"
	"github.com/soyeahso/gh-manager/internal/logging"
	"github.com/soyeahso/gh-manager/internal/mcpserver"
	"github.com/soyeahso/gh-manager/internal/store"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func newServeCmd() *cobra.Command {
	var (
		transport string
		host      string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if transport != "" {
				cfg.Server.Transport = transport
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}
			if err := config.RequireCredentials(&cfg); err != nil {
				return err
			}
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			// Stdio transport owns stdout, so logs stay on stderr
			// (plus the log file when configured).
			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			if cfg.Logging.File {
				fw, err := logging.FileWriter(paths.Logs, "gh-manager.log")
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				log = logging.New(io.MultiWriter(os.Stderr, fw), level)
			} else {
				log = logging.New(nil, level)
			}

			dbPath := filepath.Join(paths.Data, "gh-manager.db")
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			acc := gh.NewAccessor(cfg.GitHub, log)

			reg := tool.NewRegistry(log)
			handlers.RegisterAll(reg, &handlers.Deps{
				GH:      acc,
				Cfg:     &cfg,
				Backups: store.NewBackupStore(db),
				Log:     log.Sub("handlers"),
			})
			disp := tool.NewDispatcher(reg, log)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			acc.CheckRateLimit(ctx)

			log.Info().
				Str("transport", cfg.Server.Transport).
				Int("tools", reg.Count()).
				Msg("starting MCP server")

			srv := mcpserver.New(reg, disp, &cfg, acc, log)
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "override transport (stdio, sse)")
	cmd.Flags().StringVar(&host, "host", "", "override SSE bind host")
	cmd.Flags().IntVar(&port, "port", 0, "override SSE port")

	return cmd
}
