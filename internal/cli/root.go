// Package cli provides the command-line interface for the AutonomOS
// dashboard.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilyacantor/autonomos-dash/internal/cli/commands"
	"github.com/ilyacantor/autonomos-dash/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autonomos-dash",
		Short: "AutonomOS - Data Connectivity Dashboard",
		Long: `autonomos-dash serves a live dashboard over the AutonomOS data
connectivity layer: the source-to-agent flow graph, connection health,
and the human-in-the-loop review queue.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags. Names map onto config keys, so flag
	// values override file and environment settings.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./autonomos.yaml)")
	rootCmd.PersistentFlags().String("backend-url", "", "Base URL of the AutonomOS platform API")
	rootCmd.PersistentFlags().Int("port", 0, "Port for the dashboard HTTP server")
	rootCmd.PersistentFlags().Bool("dev", false, "Enable dev mode (hot reload, filesystem assets)")
	rootCmd.PersistentFlags().Int("debounce-ms", 0, "Debounce window for state re-fetches")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewServeCommand(loadConfig, newLogger))
	rootCmd.AddCommand(commands.NewStateCommand(loadConfig, newLogger))
	rootCmd.AddCommand(commands.NewPreviewCommand(loadConfig, newLogger))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// loadConfig builds config from file, env, and the root flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cfgFile, cmd.Root().PersistentFlags())
}

// newLogger builds the process logger. Verbose drops the level to
// debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Root().PersistentFlags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
