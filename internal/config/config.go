// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds shop scheduling rules.
type ScheduleConfig struct {
	DayStart                string `toml:"day_start"`                 // e.g., "09:00"
	DayEnd                  string `toml:"day_end"`                   // e.g., "19:00"
	BufferMinutes           int    `toml:"buffer_minutes"`            // minimum gap between appointments
	AllowAdjacent           bool   `toml:"allow_adjacent"`            // tolerate back-to-back bookings
	CheckBarberAvailability bool   `toml:"check_barber_availability"` // compare only same-barber appointments
	MaxAdvanceDays          int    `toml:"max_advance_days"`          // advance booking window
}

// APIConfig holds booking backend settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"` // e.g., "https://booking.example.com/api/v1"
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 means no client-side timeout
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// StorageConfig holds snapshot database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha" or "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:                "09:00",
			DayEnd:                  "19:00",
			BufferMinutes:           15,
			AllowAdjacent:           false,
			CheckBarberAvailability: true,
			MaxAdvanceDays:          60,
		},
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api/v1",
			TimeoutSeconds: 0,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default snapshot database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "figaro.db"
	}
	return filepath.Join(home, ".local", "share", "figaro", "figaro.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "figaro", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FIGARO_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("FIGARO_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("FIGARO_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("FIGARO_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("FIGARO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FIGARO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// SaveTo writes the configuration to the specified path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.BufferMinutes < 0 {
		return errors.New("buffer_minutes cannot be negative")
	}
	if c.Schedule.MaxAdvanceDays <= 0 {
		return errors.New("max_advance_days must be positive")
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds cannot be negative")
	}
	if c.API.BaseURL == "" {
		return errors.New("api base_url is required")
	}
	return nil
}

func validateTime(s, field string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	return nil
}
