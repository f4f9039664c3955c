// Package config loads the easel YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultCoalesceWindowMs = 800
	DefaultDuplicateOffset  = 20
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
)

// ErrInvalidConfig is returned when a loaded file fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration.
type Config struct {
	LogLevel string  `yaml:"log_level"`
	History  History `yaml:"history"`
	Editor   Editor  `yaml:"editor"`
	Server   Server  `yaml:"server"`
	Redis    *Redis  `yaml:"redis,omitempty"`
}

type History struct {
	CoalesceWindowMs int `yaml:"coalesce_window_ms"`
	// MaxDepth of 0 keeps every frame.
	MaxDepth int `yaml:"max_depth"`
}

type Editor struct {
	DuplicateOffset Offset      `yaml:"duplicate_offset"`
	Background      *Background `yaml:"background,omitempty"`
}

type Offset struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

type Background struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Server struct {
	Port int `yaml:"port"`
	// ShutdownAfterMinutes stops the server after that many minutes; 0 runs
	// until interrupted.
	ShutdownAfterMinutes int `yaml:"shutdown_after_minutes,omitempty"`
}

// ShutdownAfter returns the automatic shutdown delay, zero when disabled.
func (s Server) ShutdownAfter() time.Duration {
	return time.Duration(s.ShutdownAfterMinutes) * time.Minute
}

// Redis enables the Redis scene store and locker when Addr is set.
type Redis struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password,omitempty"`
	DB         int    `yaml:"db"`
	Prefix     string `yaml:"prefix,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		History: History{
			CoalesceWindowMs: DefaultCoalesceWindowMs,
		},
		Editor: Editor{
			DuplicateOffset: Offset{DX: DefaultDuplicateOffset, DY: DefaultDuplicateOffset},
		},
		Server: Server{Port: DefaultPort},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and the log level.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.History.CoalesceWindowMs < 0 {
		errs = append(errs, fmt.Errorf("history.coalesce_window_ms must be >= 0"))
	}
	if c.History.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("history.max_depth must be >= 0"))
	}
	if bg := c.Editor.Background; bg != nil && (bg.Width <= 0 || bg.Height <= 0) {
		errs = append(errs, fmt.Errorf("editor.background must have positive width and height"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.ShutdownAfterMinutes < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_after_minutes must be >= 0"))
	}
	if r := c.Redis; r != nil && r.TTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("redis.ttl_seconds must be >= 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CoalesceWindow returns the history window as a duration.
func (h History) CoalesceWindow() time.Duration {
	return time.Duration(h.CoalesceWindowMs) * time.Millisecond
}

// TTL returns the Redis key expiry, zero when unset.
func (r Redis) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}
