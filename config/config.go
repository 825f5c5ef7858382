package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tradebook configuration
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// StoreConfig selects and locates the journal backend
type StoreConfig struct {
	Type string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// ServerConfig contains HTTP API parameters
type ServerConfig struct {
	Port    int  `json:"port" yaml:"port"`
	DevMode bool `json:"dev_mode,omitempty" yaml:"dev_mode,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load returns the configuration from TRADEBOOK_CONFIG if set, else
// defaults plus environment overrides. A .env file is honored when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if path := os.Getenv("TRADEBOOK_CONFIG"); path != "" {
		return LoadFromFile(path)
	}

	cfg := Default()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays TRADEBOOK_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("TRADEBOOK_STORE_TYPE"); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv("TRADEBOOK_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TRADEBOOK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("TRADEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_PRETTY"); v != "" {
		if pretty, err := strconv.ParseBool(v); err == nil {
			c.Log.Pretty = pretty
		}
	}
	if v := os.Getenv("TRADEBOOK_DEV_MODE"); v != "" {
		if dev, err := strconv.ParseBool(v); err == nil {
			c.Server.DevMode = dev
		}
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.Type != "json" && c.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be 'json' or 'sqlite'")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Type: "json",
			Path: "./tradebook.json",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
