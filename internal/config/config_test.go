package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CREDITCLI_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(33554432), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 6, cfg.Processing.MinClusterWords)
	assert.Equal(t, 4, cfg.Processing.Workers)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
processing:
  min_cluster_words: 9
`
	require.NoError(t, os.WriteFile(configFile, []byte(yaml), 0o644))
	t.Setenv("CREDITCLI_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 9, cfg.Processing.MinClusterWords)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("CREDITCLI_CONFIG_FILE", configFile)
	t.Setenv("CREDITCLI_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}, wantErr: false},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad upload limit", mutate: func(c *Config) { c.Server.MaxUploadBytes = 0 }, wantErr: true},
		{name: "bad cluster floor", mutate: func(c *Config) { c.Processing.MinClusterWords = 2 }, wantErr: true},
		{name: "bad workers", mutate: func(c *Config) { c.Processing.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server:     ServerConfig{Port: 8080, MaxUploadBytes: 1 << 20},
				Processing: ProcessingConfig{MinClusterWords: 6, Workers: 4},
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	paths := NewPaths(PathsConfig{BaseDir: "data"})
	assert.Equal(t, filepath.Join("data", "temp"), paths.TempDir)
	assert.Equal(t, filepath.Join("data", "output"), paths.OutputDir)
	assert.Equal(t, filepath.Join("data", "output", "abc"), paths.ReportOutputDir("abc"))
}

func TestPathsAbsoluteOverride(t *testing.T) {
	tmp := t.TempDir()
	paths := NewPaths(PathsConfig{BaseDir: tmp, TempDir: filepath.Join(tmp, "elsewhere")})
	assert.Equal(t, filepath.Join(tmp, "elsewhere"), paths.TempDir)
	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.OutputDir)
}
