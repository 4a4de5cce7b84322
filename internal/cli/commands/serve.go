// Package commands implements the dashboard subcommands.
package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilyacantor/autonomos-dash/internal/backend"
	"github.com/ilyacantor/autonomos-dash/internal/config"
	"github.com/ilyacantor/autonomos-dash/internal/ui"
)

// ConfigLoader resolves the effective configuration for a command.
type ConfigLoader func(cmd *cobra.Command) (*config.Config, error)

// LoggerFactory builds the process logger for a command.
type LoggerFactory func(cmd *cobra.Command) *slog.Logger

// NewServeCommand creates the serve command.
func NewServeCommand(loadConfig ConfigLoader, newLogger LoggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long: `Start the dashboard HTTP server.

The server fetches graph state from the AutonomOS backend, renders the
source-to-agent flow view, and streams live updates to connected
browsers.`,
		Example: `  # Serve with defaults
  autonomos-dash serve

  # Serve against a staging backend on a custom port
  autonomos-dash serve --backend-url http://staging:8000/api/dcl --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			client := backend.New(cfg.BackendURL, &http.Client{Timeout: 30 * time.Second}, logger)

			server := ui.NewServer(ui.Config{
				Client:        client,
				Port:          cfg.Port,
				SessionSecret: sessionSecret(cfg),
				Debounce:      time.Duration(cfg.DebounceMS) * time.Millisecond,
				Canvas:        cfg.Canvas,
				Dev:           cfg.Dev,
				Logger:        logger,
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Starting dashboard on http://localhost:%d\n", cfg.Port)
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}
}

// sessionSecret returns the configured secret, or generates an
// ephemeral one. An ephemeral secret invalidates cookies on restart,
// which is acceptable for the dev workflow.
func sessionSecret(cfg *config.Config) string {
	if cfg.SessionSecret != "" {
		return cfg.SessionSecret
	}
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
