package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nhle/tasktracker/internal/api"
	"github.com/nhle/tasktracker/internal/credential"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/store"
)

func serveCmd() *cobra.Command {
	var addr, mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task API server",
		Long: `Run the task API over the configured database.

Examples:
  tasktracker serve
  tasktracker serve --addr :9090 --mode debug
  DB_HOST=db DB_USER=app tasktracker serve   # with database.driver: mysql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("mode") {
				cfg.Server.Mode = mode
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mode, "mode", "release", "gin mode (debug, release, test)")

	return cmd
}

func runServe(parent context.Context, cfg *model.AppConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Driver == model.DriverMySQL {
		cfg.Database.Password = credential.Resolve(cfg.Database.Password, credential.DBPasswordKey)
	}

	s, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()
	log.Printf("Connected to %s database", cfg.Database.Driver)

	server := api.NewServer(s, cfg.Server)
	if err := server.Run(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
