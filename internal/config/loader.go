package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	koanfposflag "github.com/knadh/koanf/providers/posflag"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "autonomos.yaml"
	ConfigFileNameAlt = "autonomos.yml"
)

// EnvPrefix namespaces environment overrides, e.g.
// AUTONOMOS_BACKEND_URL or AUTONOMOS_CANVAS__WIDTH.
const EnvPrefix = "AUTONOMOS_"

// Load builds the configuration in precedence order: defaults, config
// file (explicit path or discovered in the working directory), env
// vars, then CLI flags. flags may be nil.
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"backend_url":   DefaultBackendURL,
		"port":          DefaultPort,
		"debounce_ms":   DefaultDebounceMS,
		"canvas.width":  DefaultCanvasWidth,
		"canvas.height": DefaultCanvasHeight,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(explicitPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicitPath != "" {
		return nil, fmt.Errorf("config file not found: %s", explicitPath)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		// Flags use dashes, koanf keys use underscores. Unchanged flags
		// must not clobber file or env values.
		cb := func(f *pflag.Flag) (string, interface{}) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !f.Changed && k.Exists(key) {
				return "", nil
			}
			return key, koanfposflag.FlagVal(flags, f)
		}
		if err := k.Load(koanfposflag.ProviderWithFlag(flags, ".", k, cb), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// envKey maps AUTONOMOS_CANVAS__WIDTH to canvas.width. A double
// underscore separates nesting levels.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir looking for a config file.
// Returns empty string when none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
