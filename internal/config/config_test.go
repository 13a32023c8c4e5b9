package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"template": "tech-specialist",
		"page_size": "a4",
		"max_pages": 2,
		"export_timeout": "30s",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "tech-specialist", cfg.Template)
	assert.Equal(t, "a4", cfg.PageSize)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, 30*time.Second, cfg.ExportTimeout)
	assert.True(t, cfg.Verbose)
	// untouched keys keep their defaults
	assert.Equal(t, "vector", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "mode: raster\nraster_scale: 1.5\nlog_format: json\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "raster", cfg.Mode)
	assert.Equal(t, 1.5, cfg.RasterScale)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "config.json", `{"template": "minimal-clean", "port": 9000}`)
	t.Setenv("RESUME_PORT", "9191")
	t.Setenv("RESUME_ATS_SAFE", "true")
	t.Setenv("RESUME_PAGE_SIZE", "A4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal-clean", cfg.Template)
	assert.Equal(t, 9191, cfg.Port)
	assert.True(t, cfg.ATSSafe)
	assert.Equal(t, "A4", cfg.PageSize)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "config.json", `{"mode": "bitmap"}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'mode'")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown page size", func(c *Config) { c.PageSize = "legal" }, "unknown page size"},
		{"negative max pages", func(c *Config) { c.MaxPages = -1 }, "'max_pages'"},
		{"negative timeout", func(c *Config) { c.ExportTimeout = -time.Second }, "'export_timeout'"},
		{"scale too large", func(c *Config) { c.RasterScale = 8 }, "'raster_scale'"},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "'port'"},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "'log_format'"},
		{"missing chrome", func(c *Config) { c.ChromePath = "/nonexistent/chrome" }, "chrome binary not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Template: "tech-specialist", MaxPages: 1}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "tech-specialist", merged.Template)
	assert.Equal(t, 1, merged.MaxPages)
	assert.Equal(t, "letter", merged.PageSize)
	assert.Equal(t, "vector", merged.Mode)
	assert.Equal(t, 60*time.Second, merged.ExportTimeout)
	assert.Equal(t, 8080, merged.Port)
	// original is untouched
	assert.Empty(t, cfg.PageSize)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	cfg = Config{LogLevel: "error", Verbose: true}
	cfg.NewLogger(&buf).Debug("debugging")
	assert.Contains(t, buf.String(), "msg=debugging")
}
