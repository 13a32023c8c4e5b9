// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-composer/internal/templates"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_PAGE_SIZE.
const EnvPrefix = "RESUME"

// Config holds settings that can come from a JSON or YAML file, RESUME_*
// environment variables, or CLI flags. All fields are optional.
type Config struct {
	// Composition
	Template string `json:"template,omitempty" mapstructure:"template"`   // Template identifier
	PageSize string `json:"page_size,omitempty" mapstructure:"page_size"` // "letter" or "a4"
	ATSSafe  bool   `json:"ats_safe,omitempty" mapstructure:"ats_safe"`   // Drop decorative fills
	MaxPages int    `json:"max_pages,omitempty" mapstructure:"max_pages"` // Page limit for checks; 0 disables

	// Export
	Mode          string        `json:"mode,omitempty" mapstructure:"mode"`                     // "vector" or "raster"
	OutputDir     string        `json:"output_dir,omitempty" mapstructure:"output_dir"`         // Where exports are written
	ChromePath    string        `json:"chrome_path,omitempty" mapstructure:"chrome_path"`       // Browser for raster exports
	ExportTimeout time.Duration `json:"export_timeout,omitempty" mapstructure:"export_timeout"` // Per-export deadline
	RasterScale   float64       `json:"raster_scale,omitempty" mapstructure:"raster_scale"`     // Device scale for raster pages

	// Server
	Port int `json:"port,omitempty" mapstructure:"port"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" mapstructure:"log_level"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" mapstructure:"log_format"` // text or json
	Verbose   bool   `json:"verbose,omitempty" mapstructure:"verbose"`       // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Template:      templates.DefaultTemplateID,
		PageSize:      "letter",
		Mode:          "vector",
		OutputDir:     ".",
		ExportTimeout: 60 * time.Second,
		RasterScale:   2,
		Port:          8080,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

var keys = []string{
	"template", "page_size", "ats_safe", "max_pages",
	"mode", "output_dir", "chrome_path", "export_timeout", "raster_scale",
	"port", "log_level", "log_format", "verbose",
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("template", d.Template)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("ats_safe", d.ATSSafe)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("chrome_path", d.ChromePath)
	v.SetDefault("export_timeout", d.ExportTimeout)
	v.SetDefault("raster_scale", d.RasterScale)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return v, nil
}

// Load builds the configuration from defaults, the optional file at path
// and RESUME_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, statErr)
			}
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a file that must exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	return Load(path)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if _, err := templates.PageSizeByName(c.PageSize); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	switch strings.ToLower(c.Mode) {
	case "", "vector", "raster":
	default:
		return fmt.Errorf("config error: 'mode' must be vector or raster, got %q", c.Mode)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("config error: 'max_pages' must be non-negative")
	}
	if c.ExportTimeout < 0 {
		return fmt.Errorf("config error: 'export_timeout' must be non-negative")
	}
	if c.RasterScale < 0 || c.RasterScale > 4 {
		return fmt.Errorf("config error: 'raster_scale' must be between 0 and 4")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. It applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ExportTimeout == 0 {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.RasterScale == 0 {
		result.RasterScale = defaults.RasterScale
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds a structured logger writing to w. Verbose forces the
// debug level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
