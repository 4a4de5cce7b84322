package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ilyacantor/autonomos-dash/internal/config"
)

// starterConfig mirrors the config file shape with yaml tags so the
// generated file round-trips through the loader.
type starterConfig struct {
	BackendURL string        `yaml:"backend_url"`
	Port       int           `yaml:"port"`
	Dev        bool          `yaml:"dev"`
	DebounceMS int           `yaml:"debounce_ms"`
	Canvas     starterCanvas `yaml:"canvas"`
}

type starterCanvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter configuration file",
		Long: `Write an autonomos.yaml with the default settings so they can be
edited in place.`,
		Example: `  # Initialize in the current directory
  autonomos-dash init

  # Initialize a new directory
  autonomos-dash init my-dashboard

  # Overwrite an existing config
  autonomos-dash init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
			}

			starter := starterConfig{
				BackendURL: config.DefaultBackendURL,
				Port:       config.DefaultPort,
				DebounceMS: config.DefaultDebounceMS,
				Canvas: starterCanvas{
					Width:  config.DefaultCanvasWidth,
					Height: config.DefaultCanvasHeight,
				},
			}
			data, err := yaml.Marshal(starter)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0600); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}
