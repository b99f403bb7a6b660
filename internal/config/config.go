// Package config loads and validates the sunshift TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultInterval     = 300
	DefaultTimeout      = 10
	DefaultGeocodingURL = "https://nominatim.openstreetmap.org/search"
	DefaultIPURL        = "http://ip-api.com/json/"
	DefaultUserAgent    = "sunshift/1.0"
)

// DefaultLocation is the static last-resort location.
type DefaultLocation struct {
	Name      string  `toml:"name"`
	Region    string  `toml:"region"`
	Timezone  string  `toml:"timezone"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

type LocationConfig struct {
	Latitude  *float64        `toml:"latitude,omitempty"`
	Longitude *float64        `toml:"longitude,omitempty"`
	City      string          `toml:"city"`
	Default   DefaultLocation `toml:"default"`
}

// ThemesConfig holds the theme identifiers handed to the platform applier.
// Empty values mean "use the platform defaults".
type ThemesConfig struct {
	Light string `toml:"light"`
	Dark  string `toml:"dark"`
}

type DaemonConfig struct {
	Interval int `toml:"interval"`
}

type NetworkConfig struct {
	Enabled      bool   `toml:"enabled"`
	Timeout      int    `toml:"timeout"`
	GeocodingURL string `toml:"geocoding-url"`
	IPURL        string `toml:"ip-url"`
	UserAgent    string `toml:"user-agent"`
}

type LogConfig struct {
	Path string `toml:"path"`
}

type Config struct {
	Location LocationConfig `toml:"location"`
	Themes   ThemesConfig   `toml:"themes"`
	Daemon   DaemonConfig   `toml:"daemon"`
	Network  NetworkConfig  `toml:"network"`
	Log      LogConfig      `toml:"log"`

	configPath string
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sunshift")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func DefaultConfig() *Config {
	return &Config{
		Location: LocationConfig{
			Default: DefaultLocation{
				Name:      "New York",
				Region:    "USA",
				Timezone:  "America/New_York",
				Latitude:  40.7128,
				Longitude: -74.0060,
			},
		},
		Daemon: DaemonConfig{
			Interval: DefaultInterval,
		},
		Network: NetworkConfig{
			Enabled:      true,
			Timeout:      DefaultTimeout,
			GeocodingURL: DefaultGeocodingURL,
			IPURL:        DefaultIPURL,
			UserAgent:    DefaultUserAgent,
		},
		Log: LogConfig{
			Path: filepath.Join(DefaultConfigDir(), "sunshift.log"),
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	path = expandPath(path)

	cfg := DefaultConfig()
	cfg.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.postProcess()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) postProcess() {
	c.Log.Path = expandPath(expandEnv(c.Log.Path))
	c.Location.City = strings.TrimSpace(expandEnv(c.Location.City))
	c.Themes.Light = strings.TrimSpace(c.Themes.Light)
	c.Themes.Dark = strings.TrimSpace(c.Themes.Dark)
	c.Network.UserAgent = expandEnv(c.Network.UserAgent)

	if c.Network.UserAgent == "" {
		c.Network.UserAgent = DefaultUserAgent
	}
}

func (c *Config) Validate() error {
	if c.Daemon.Interval < 1 {
		return fmt.Errorf("invalid daemon interval: %d (must be at least 1 second)", c.Daemon.Interval)
	}

	if c.Network.Timeout < 1 {
		return fmt.Errorf("invalid network timeout: %d (must be at least 1 second)", c.Network.Timeout)
	}

	if c.Network.Enabled {
		if c.Network.GeocodingURL == "" {
			return fmt.Errorf("network: geocoding-url is required when network is enabled")
		}
		if c.Network.IPURL == "" {
			return fmt.Errorf("network: ip-url is required when network is enabled")
		}
	}

	if lat := c.Location.Latitude; lat != nil {
		if err := validateLatitude("location", *lat); err != nil {
			return err
		}
	}
	if lon := c.Location.Longitude; lon != nil {
		if err := validateLongitude("location", *lon); err != nil {
			return err
		}
	}

	d := c.Location.Default
	if err := validateLatitude("location.default", d.Latitude); err != nil {
		return err
	}
	if err := validateLongitude("location.default", d.Longitude); err != nil {
		return err
	}
	if d.Name == "" {
		return fmt.Errorf("location.default: name is required")
	}

	return nil
}

func validateLatitude(section string, lat float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%s: invalid latitude %v (must be between -90 and 90)", section, lat)
	}
	return nil
}

func validateLongitude(section string, lon float64) error {
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%s: invalid longitude %v (must be between -180 and 180)", section, lon)
	}
	return nil
}

// PollInterval returns the daemon interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Daemon.Interval) * time.Second
}

// NetworkTimeout returns the per-request timeout for location lookups.
func (c *Config) NetworkTimeout() time.Duration {
	return time.Duration(c.Network.Timeout) * time.Second
}

func (c *Config) ConfigPath() string {
	return c.configPath
}

func (c *Config) Save(path string) error {
	if path == "" {
		path = c.configPath
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	path = expandPath(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// EnsureDirectories creates the directories the log file lives in.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Log.Path)
	if c.Log.Path == "" || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func expandEnv(s string) string {
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		inner := s[2 : len(s)-1]

		if idx := strings.Index(inner, ":-"); idx != -1 {
			varName := inner[:idx]
			defaultVal := inner[idx+2:]
			if val := os.Getenv(varName); val != "" {
				return val
			}
			return defaultVal
		}

		return os.Getenv(inner)
	}

	if strings.HasPrefix(s, "$") && !strings.Contains(s, " ") {
		return os.Getenv(s[1:])
	}

	return s
}
