// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for termfolio.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete termfolio configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Profile    ProfileConfig    `toml:"profile" json:"profile"`
	Storage    StorageConfig    `toml:"storage" json:"storage"`
	Appearance AppearanceConfig `toml:"appearance" json:"appearance"`
	Content    ContentConfig    `toml:"content" json:"content"`
	Server     ServerConfig     `toml:"server" json:"server"`
	Logging    LoggingConfig    `toml:"logging" json:"logging"`
	UI         UIConfig         `toml:"ui" json:"ui"`
}

// ProfileConfig controls the identity the shell presents.
type ProfileConfig struct {
	// Hostname is printed by `hostname` and in the prompt. Empty uses os.Hostname.
	Hostname string `toml:"hostname" json:"hostname"`
	// User is printed by `whoami` and in the prompt.
	User string `toml:"user" json:"user"`
}

// StorageConfig locates the preference database.
type StorageConfig struct {
	// DBPath is the SQLite file holding persisted preferences.
	DBPath string `toml:"db_path" json:"db_path"`
	// Origin scopes preferences for the terminal UI and REPL.
	Origin string `toml:"origin" json:"origin"`
}

// AppearanceConfig selects where the OS light/dark preference comes from.
type AppearanceConfig struct {
	// Source is "system", "file" or "fixed".
	Source string `toml:"source" json:"source"`
	// File is watched when Source is "file"; it contains "dark" or "light".
	File string `toml:"file" json:"file"`
	// PollIntervalSecs is how often the system source re-queries the OS.
	PollIntervalSecs int `toml:"poll_interval_secs" json:"poll_interval_secs"`
	// Fixed is the preference used when Source is "fixed": "dark" or "light".
	Fixed string `toml:"fixed" json:"fixed"`
}

// ContentConfig points at optional on-disk overrides of the embedded content.
type ContentConfig struct {
	// Dir holds profile.toml, experience.json, education.json, skills.json, README.md.
	Dir string `toml:"dir" json:"dir"`
	// ThemesDir holds additional *.toml theme files.
	ThemesDir string `toml:"themes_dir" json:"themes_dir"`
}

// ServerConfig configures `termfolio serve`.
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr"`
	// RateLimit is the sustained requests per second allowed per client IP.
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// RateBurst is the burst size allowed per client IP.
	RateBurst int `toml:"rate_burst" json:"rate_burst"`
	// SessionTTLMinutes expires idle browser sessions.
	SessionTTLMinutes int `toml:"session_ttl_minutes" json:"session_ttl_minutes"`
	// ShutdownTimeoutSecs bounds graceful shutdown.
	ShutdownTimeoutSecs int `toml:"shutdown_timeout_secs" json:"shutdown_timeout_secs"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
	// File receives logs while the TUI owns the terminal.
	File string `toml:"file" json:"file"`
	// Journal adds the systemd journal sink when running as a service.
	Journal bool `toml:"journal" json:"journal"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	ShowStatusBar bool `toml:"show_status_bar" json:"show_status_bar"`
	ShowBanner    bool `toml:"show_banner" json:"show_banner"`
	// MaxRecall is how many previous inputs Up/Down can recall.
	MaxRecall int `toml:"max_recall" json:"max_recall"`
	// NoColor disables color output.
	NoColor bool `toml:"no_color" json:"no_color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Profile: ProfileConfig{
			Hostname: "",
			User:     "guest",
		},

		Storage: StorageConfig{
			DBPath: "~/.termfolio/prefs.db",
			Origin: "terminal",
		},

		Appearance: AppearanceConfig{
			Source:           "system",
			File:             "~/.termfolio/appearance",
			PollIntervalSecs: 5,
			Fixed:            "dark",
		},

		Server: ServerConfig{
			Addr:                "127.0.0.1:8080",
			RateLimit:           5,
			RateBurst:           20,
			SessionTTLMinutes:   60,
			ShutdownTimeoutSecs: 10,
		},

		Logging: LoggingConfig{
			Level:   "info",
			Format:  "text",
			File:    "~/.termfolio/termfolio.log",
			Journal: true,
		},

		UI: UIConfig{
			ShowStatusBar: true,
			ShowBanner:    true,
			MaxRecall:     100,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the termfolio configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".termfolio"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// PollInterval returns the appearance poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Appearance.PollIntervalSecs) * time.Second
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default location.
// TOML wins over JSON; when neither exists the defaults are used. A file that
// fails to decode is reported alongside a usable default config.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			return finish(Default()), err
		}
		return cfg, nil
	}
	return finish(Default()), nil
}

// LoadFromPath loads configuration from an explicit file. The format is
// chosen by extension; anything but .json is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}

	cfg = finish(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) *Config {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	return cfg
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# termfolio configuration file\n")
	b.WriteString("# Generated by termfolio - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Appearance.Source {
	case "system", "file", "fixed":
	default:
		errs = append(errs, ValidationError{"appearance.source", "must be one of system, file, fixed"})
	}
	if c.Appearance.Source == "file" && c.Appearance.File == "" {
		errs = append(errs, ValidationError{"appearance.file", "required when appearance.source is file"})
	}
	switch c.Appearance.Fixed {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{"appearance.fixed", "must be dark or light"})
	}
	if c.Appearance.PollIntervalSecs < 1 || c.Appearance.PollIntervalSecs > 3600 {
		errs = append(errs, ValidationError{"appearance.poll_interval_secs", "must be between 1 and 3600"})
	}

	if c.Storage.DBPath == "" {
		errs = append(errs, ValidationError{"storage.db_path", "must not be empty"})
	}
	if c.Storage.Origin == "" {
		errs = append(errs, ValidationError{"storage.origin", "must not be empty"})
	}

	if c.Server.RateLimit <= 0 {
		errs = append(errs, ValidationError{"server.rate_limit", "must be positive"})
	}
	if c.Server.RateBurst < 1 {
		errs = append(errs, ValidationError{"server.rate_burst", "must be at least 1"})
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{"logging.format", "must be text or json"})
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{"logging.level", "must be debug, info, warn or error"})
	}

	if c.UI.MaxRecall < 0 {
		errs = append(errs, ValidationError{"ui.max_recall", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values left by partial config files.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Profile.User == "" {
		c.Profile.User = d.Profile.User
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = d.Storage.DBPath
	}
	if c.Storage.Origin == "" {
		c.Storage.Origin = d.Storage.Origin
	}
	if c.Appearance.Source == "" {
		c.Appearance.Source = d.Appearance.Source
	}
	if c.Appearance.PollIntervalSecs == 0 {
		c.Appearance.PollIntervalSecs = d.Appearance.PollIntervalSecs
	}
	if c.Appearance.Fixed == "" {
		c.Appearance.Fixed = d.Appearance.Fixed
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.SessionTTLMinutes <= 0 {
		c.Server.SessionTTLMinutes = d.Server.SessionTTLMinutes
	}
	if c.Server.ShutdownTimeoutSecs <= 0 {
		c.Server.ShutdownTimeoutSecs = d.Server.ShutdownTimeoutSecs
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// ApplyEnvOverrides applies TERMFOLIO_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TERMFOLIO_HOSTNAME"); v != "" {
		c.Profile.Hostname = v
	}
	if v := os.Getenv("TERMFOLIO_USER"); v != "" {
		c.Profile.User = v
	}
	if v := os.Getenv("TERMFOLIO_DB"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("TERMFOLIO_APPEARANCE"); v != "" {
		c.Appearance.Source = v
	}
	if v := os.Getenv("TERMFOLIO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TERMFOLIO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "profile.user").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "server.addr").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		name := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(n string) bool {
			return strings.EqualFold(n, name)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if s, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(s)
			return nil
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(n)
			return nil
		case reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(f)
			return nil
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid boolean value: %v", err)
			}
			field.SetBool(b)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"profile.hostname",
		"profile.user",
		"storage.db_path",
		"storage.origin",
		"appearance.source",
		"appearance.file",
		"appearance.poll_interval_secs",
		"appearance.fixed",
		"content.dir",
		"content.themes_dir",
		"server.addr",
		"server.rate_limit",
		"server.rate_burst",
		"server.session_ttl_minutes",
		"server.shutdown_timeout_secs",
		"logging.level",
		"logging.format",
		"logging.file",
		"logging.journal",
		"ui.show_status_bar",
		"ui.show_banner",
		"ui.max_recall",
		"ui.no_color",
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return b.String()
}
