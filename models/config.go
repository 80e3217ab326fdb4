// Package models defines data structures for configuration and extraction results.
package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FetchConfig holds runtime configuration for a CLI extraction batch.
// All values come from CLI flags, not external config files.
type FetchConfig struct {
	URLs        []string
	WorkerCount int
}

// Config is the service configuration, read from YAML and the environment.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetch     HTTPConfig      `yaml:"fetch"`
	Instagram InstagramConfig `yaml:"instagram"`
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBytes     int64         `yaml:"max_bytes"`
	MaxRedirects int           `yaml:"max_redirects"`
}

type InstagramConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	GraphVersion string `yaml:"graph_version"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// HistoryConfig enables the SQLite extraction history when DBPath is set.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
}

// DefaultUserAgent identifies the fetcher to remote sites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; MetadataBot/1.0)"

// LoadConfig reads path (a missing file is not an error), loads a .env file
// if one exists, applies environment overrides and fills defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env is optional; variables already in the environment win.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.defaults()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("INSTAGRAM_CLIENT_ID"); v != "" {
		c.Instagram.ClientID = v
	}
	if v := os.Getenv("INSTAGRAM_CLIENT_SECRET"); v != "" {
		c.Instagram.ClientSecret = v
	}
	if v := os.Getenv("INSTAGRAM_REDIRECT_URI"); v != "" {
		c.Instagram.RedirectURI = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("HISTORY_DB"); v != "" {
		c.History.DBPath = v
	}
	return nil
}

func (c *Config) defaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5009
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 10 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = 5 * 1024 * 1024
	}
	if c.Fetch.MaxRedirects <= 0 {
		c.Fetch.MaxRedirects = 10
	}
	if c.Instagram.RedirectURI == "" {
		c.Instagram.RedirectURI = "https://znapsite.com/auth/instagram/callback"
	}
	if c.Instagram.GraphVersion == "" {
		c.Instagram.GraphVersion = "v18.0"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
