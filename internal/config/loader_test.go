package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDebounceMS, cfg.DebounceMS)
	assert.Equal(t, DefaultCanvasWidth, cfg.Canvas.Width)
	assert.False(t, cfg.Dev)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `
backend_url: http://platform:9000/api/dcl
port: 9090
dev: true
canvas:
  width: 1600
`)
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://platform:9000/api/dcl", cfg.BackendURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Dev)
	assert.Equal(t, 1600.0, cfg.Canvas.Width)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultCanvasHeight, cfg.Canvas.Height)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("nope.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "port: 9090\n")
	chdir(t, dir)
	t.Setenv("AUTONOMOS_PORT", "7070")
	t.Setenv("AUTONOMOS_CANVAS__HEIGHT", "480")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 480.0, cfg.Canvas.Height)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AUTONOMOS_PORT", "7070")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--port", "6060"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileNameAlt), "port: 1\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, "", FindProjectRoot(string(filepath.Separator)))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}
