/*
Package config loads the server configuration from a TOML file.

PURPOSE:
  One file, one struct. Every knob the server honours lives here with a
  sane default, so a missing config file still yields a runnable server
  and a partial file only overrides what it names.

SECTIONS:
  [server]     listen port, CORS, request timeouts
  [hotel]      capacity, default nightly rate, locator prefix, stay cap
  [storage]    driver (sqlite | json | memory) and its path
  [scheduler]  daily-sweep toggle and check interval
  [metrics]    Prometheus endpoint toggle

USAGE:
  cfg, err := config.Load("config.toml")

SEE ALSO:
  - cmd/server/main.go: the only consumer
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server    Server    `toml:"server"`
	Hotel     Hotel     `toml:"hotel"`
	Storage   Storage   `toml:"storage"`
	Scheduler Scheduler `toml:"scheduler"`
	Metrics   Metrics   `toml:"metrics"`
}

type Server struct {
	Port            int `toml:"port"`
	ReadTimeoutSec  int `toml:"read_timeout_sec"`
	WriteTimeoutSec int `toml:"write_timeout_sec"`
	ShutdownSec     int `toml:"shutdown_sec"`
}

type Hotel struct {
	Capacity      int     `toml:"capacity"`
	DefaultRate   float64 `toml:"default_rate"`
	LocatorPrefix string  `toml:"locator_prefix"`
	MaxStayNights int     `toml:"max_stay_nights"`
}

type Storage struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type Scheduler struct {
	Enabled          bool `toml:"enabled"`
	CheckIntervalMin int  `toml:"check_interval_min"`
}

type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			ShutdownSec:     10,
		},
		Hotel: Hotel{
			Capacity:      45,
			DefaultRate:   300,
			LocatorPrefix: "OO",
			MaxStayNights: 60,
		},
		Storage: Storage{
			Driver: "sqlite",
			Path:   "./data/hotel.db",
		},
		Scheduler: Scheduler{
			Enabled:          true,
			CheckIntervalMin: 30,
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Hotel.Capacity <= 0 {
		return fmt.Errorf("hotel.capacity must be positive, got %d", c.Hotel.Capacity)
	}
	if c.Hotel.DefaultRate <= 0 {
		return fmt.Errorf("hotel.default_rate must be positive, got %v", c.Hotel.DefaultRate)
	}
	if c.Hotel.MaxStayNights <= 0 {
		return fmt.Errorf("hotel.max_stay_nights must be positive, got %d", c.Hotel.MaxStayNights)
	}
	switch c.Storage.Driver {
	case "sqlite", "json", "memory":
	default:
		return fmt.Errorf("storage.driver must be sqlite, json or memory, got %q", c.Storage.Driver)
	}
	if c.Scheduler.Enabled && c.Scheduler.CheckIntervalMin <= 0 {
		return fmt.Errorf("scheduler.check_interval_min must be positive, got %d", c.Scheduler.CheckIntervalMin)
	}
	return nil
}

// ReadTimeout returns the HTTP read timeout as a duration.
func (s Server) ReadTimeout() time.Duration { return time.Duration(s.ReadTimeoutSec) * time.Second }

// WriteTimeout returns the HTTP write timeout as a duration.
func (s Server) WriteTimeout() time.Duration { return time.Duration(s.WriteTimeoutSec) * time.Second }

// ShutdownTimeout returns the graceful-shutdown grace period.
func (s Server) ShutdownTimeout() time.Duration { return time.Duration(s.ShutdownSec) * time.Second }

// CheckInterval returns how often the scheduler wakes to check for a new day.
func (s Scheduler) CheckInterval() time.Duration {
	return time.Duration(s.CheckIntervalMin) * time.Minute
}
