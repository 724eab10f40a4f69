// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Environment variables read by ApplyEnv.
const (
	EnvFont         = "RESUME_FONT"
	EnvFontSize     = "RESUME_FONT_SIZE"
	EnvLocale       = "RESUME_LOCALE"
	EnvTemplate     = "RESUME_TEMPLATE"
	EnvTypstBinary  = "TYPST_BINARY"
	EnvTypstFonts   = "TYPST_FONT_PATHS"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvPort         = "PORT"
	EnvRateLimitRPM = "RATE_LIMIT_RPM"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Rendering
	Font     string `json:"font,omitempty"`      // Default font family
	FontSize int    `json:"font_size,omitempty"` // Default base font size in points
	Locale   string `json:"locale,omitempty"`    // Default locale (BCP 47)
	Template string `json:"template,omitempty"`  // Default template id

	// Engine
	TypstBinary           string   `json:"typst_binary,omitempty"`            // typst executable
	FontPaths             []string `json:"font_paths,omitempty"`              // Extra font directories
	CompileTimeoutSeconds int      `json:"compile_timeout_seconds,omitempty"` // Per-compile timeout

	// Services
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	Port         int    `json:"port,omitempty"`           // HTTP port for serve
	RateLimitRPM int    `json:"rate_limit_rpm,omitempty"` // Requests per minute per client

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	s := types.DefaultSettings()
	return Config{
		Font:                  s.Font,
		FontSize:              s.FontSize,
		Locale:                s.Locale,
		Template:              s.TemplateID,
		TypstBinary:           engine.DefaultBinary,
		CompileTimeoutSeconds: int(engine.DefaultCompileTimeout / time.Second),
		Port:                  8080,
		RateLimitRPM:          60,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any environment variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvFont); ok && v != "" {
		c.Font = v
	}
	if v, ok := os.LookupEnv(EnvLocale); ok && v != "" {
		c.Locale = v
	}
	if v, ok := os.LookupEnv(EnvTemplate); ok && v != "" {
		c.Template = v
	}
	if v, ok := os.LookupEnv(EnvTypstBinary); ok && v != "" {
		c.TypstBinary = v
	}
	if v, ok := os.LookupEnv(EnvTypstFonts); ok && v != "" {
		c.FontPaths = filepath.SplitList(v)
	}
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok && v != "" {
		c.DatabaseURL = v
	}

	ints := []struct {
		env    string
		target *int
	}{
		{EnvFontSize, &c.FontSize},
		{EnvPort, &c.Port},
		{EnvRateLimitRPM, &c.RateLimitRPM},
	}
	for _, i := range ints {
		v, ok := os.LookupEnv(i.env)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", i.env, err)
		}
		*i.target = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.FontSize != 0 && (c.FontSize < 6 || c.FontSize > 32) {
		return fmt.Errorf("config error: 'font_size' must be between 6 and 32")
	}
	if c.CompileTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'compile_timeout_seconds' must be non-negative")
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("config error: 'rate_limit_rpm' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("config error: invalid locale %q: %w", c.Locale, err)
		}
	}
	if c.Template != "" {
		if _, err := rendering.LookupTemplate(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	// Validate font directories exist (if specified)
	for _, p := range c.FontPaths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("config error: font path not found: %s", p)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Font == "" {
		result.Font = defaults.Font
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.TypstBinary == "" {
		result.TypstBinary = defaults.TypstBinary
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.FontPaths) == 0 {
		result.FontPaths = defaults.FontPaths
	}

	// Int fields: use default if zero
	if result.FontSize == 0 {
		result.FontSize = defaults.FontSize
	}
	if result.CompileTimeoutSeconds == 0 {
		result.CompileTimeoutSeconds = defaults.CompileTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPM == 0 {
		result.RateLimitRPM = defaults.RateLimitRPM
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Settings returns the render settings described by the configuration.
func (c *Config) Settings() types.Settings {
	return types.Settings{
		Font:       c.Font,
		FontSize:   c.FontSize,
		Locale:     c.Locale,
		TemplateID: c.Template,
	}
}

// CompileTimeout returns the per-compile timeout.
func (c *Config) CompileTimeout() time.Duration {
	return time.Duration(c.CompileTimeoutSeconds) * time.Second
}

// EngineOptions returns loader options for the typst engine.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Binary:    c.TypstBinary,
		FontPaths: c.FontPaths,
		Timeout:   c.CompileTimeout(),
	}
}
