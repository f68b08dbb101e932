package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"tasktrack/internal/api"
	"tasktrack/internal/config"
	"tasktrack/internal/repository/sqlite"
	"tasktrack/internal/server"
)

const shutdownTimeout = 30 * time.Second

// NewServeCommand creates the command that runs the task store service
func NewServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the task store HTTP service",
		Long: `Starts the HTTP service that owns task persistence. The SQLite
database and its schema are created idempotently on startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}
}

func runServe(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	repo, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	srv := server.New(api.NewWithConfig(repo, cfg))

	go func() {
		if err := srv.Listen(cfg.ListenAddr()); err != nil {
			log.Printf("[server] HTTP server error: %v", err)
		}
	}()
	log.Printf("[server] listening on %s", cfg.ListenAddr())

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("[server] shutting down HTTP server...")
				return srv.Shutdown(ctx)
			},
			"repository": func(ctx context.Context) error {
				return repo.Close()
			},
		},
	)

	exitCode := <-wait
	if exitCode != 0 {
		return fmt.Errorf("shutdown finished with code %d", exitCode)
	}
	log.Println("[server] shutdown complete")
	return nil
}
