// Package config loads and defaults the dashboard configuration. It is
// decoupled from CLI concerns so the server and commands share one
// loader.
package config

// Config is the full dashboard configuration.
type Config struct {
	// BackendURL is the base URL of the AutonomOS platform API.
	BackendURL string `koanf:"backend_url"`

	// Port the dashboard HTTP server listens on.
	Port int `koanf:"port"`

	// Dev enables the hot-reload endpoint and filesystem asset serving.
	Dev bool `koanf:"dev"`

	// SessionSecret signs the cookie session store.
	SessionSecret string `koanf:"session_secret"`

	// DebounceMS is the delay applied before re-fetching state after a
	// state-changed event burst.
	DebounceMS int `koanf:"debounce_ms"`

	Canvas CanvasConfig `koanf:"canvas"`
}

// CanvasConfig is the default sankey canvas size used until the
// browser reports its measured dimensions.
type CanvasConfig struct {
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
}

// Default configuration values.
const (
	DefaultBackendURL = "http://localhost:8000/api/dcl"
	DefaultPort       = 8780
	DefaultDebounceMS = 150

	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 600.0
)

// ApplyDefaults fills zero-valued fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DebounceMS == 0 {
		c.DebounceMS = DefaultDebounceMS
	}
	if c.Canvas.Width == 0 {
		c.Canvas.Width = DefaultCanvasWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = DefaultCanvasHeight
	}
}
