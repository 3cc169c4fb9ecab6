// Package config loads the elmstore.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "elmstore.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"
)

// Config represents the complete elmstore.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// API contains the content API client configuration.
	API APIConfig `json:"api,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Live contains live feed configuration.
	Live LiveConfig `json:"live,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// APIConfig contains content API client settings.
type APIConfig struct {
	// BaseURL is the base URL of the content API.
	BaseURL string `json:"baseUrl,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Metrics exposes /metrics on the dev server.
	Metrics bool `json:"metrics,omitempty"`
}

// LiveConfig contains live feed settings.
type LiveConfig struct {
	// Enabled controls whether the client subscribes to the event feed.
	Enabled bool `json:"enabled,omitempty"`

	// URL is the websocket endpoint; derived from the API base when empty.
	URL string `json:"url,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://" + DefaultHost + ":" + strconv.Itoa(DefaultPort),
		},
		Dev: DevConfig{
			Port:    DefaultPort,
			Host:    DefaultHost,
			Metrics: true,
		},
		Live: LiveConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// elmstore.json in the directory; a missing file yields the defaults.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. A missing file
// is not an error; the defaults are returned.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://" + c.DevAddress()
	}
	if c.Live.URL == "" {
		c.Live.URL = c.LiveURL()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return fmt.Errorf("dev.port %d out of range", c.Dev.Port)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseUrl is required")
	}
	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// LiveURL returns the websocket endpoint for the event feed. When not set
// explicitly it is derived from the API base URL.
func (c *Config) LiveURL() string {
	if c.Live.URL != "" {
		return c.Live.URL
	}
	base := c.API.BaseURL
	switch {
	case len(base) > 8 && base[:8] == "https://":
		base = "wss://" + base[8:]
	case len(base) > 7 && base[:7] == "http://":
		base = "ws://" + base[7:]
	}
	return base + "/live"
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
