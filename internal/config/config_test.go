package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to an empty directory so no stray datasync.yaml or .env
// is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	writeFile(t, dir, "datasync.yaml", "base_url: https://api.example.com/items\nformat: yaml\ntimeout: 5s\n")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/items", cfg.BaseURL)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	dir := chdir(t)

	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "custom.yaml", "base_url: https://file.example.com\n")
	t.Setenv("DATASYNC_BASE_URL", "https://env.example.com")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "test.env", "DATASYNC_TOKEN=secret\n")
	t.Setenv("DATASYNC_TOKEN", "")
	require.NoError(t, os.Unsetenv("DATASYNC_TOKEN"))

	cfg, err := Load(Options{EnvFiles: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoad_EnvFileMissing(t *testing.T) {
	chdir(t)

	_, err := Load(Options{EnvFiles: []string{"missing.env"}})
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	chdir(t)
	t.Setenv("DATASYNC_FORMAT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "json", "")
	flags.String("base-url", "", "")
	flags.Bool("unrelated", false, "")
	require.NoError(t, flags.Parse([]string{"--base-url", "https://flag.example.com"}))

	cfg, err := Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com", cfg.BaseURL)
	assert.Equal(t, "yaml", cfg.Format, "unchanged flags must not shadow the environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.BaseURL = "items" }},
		{"unknown format", func(c *Config) { c.Format = "xml" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "logfmt" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}

	cfg := Defaults()
	assert.NoError(t, Validate(&cfg))
}
