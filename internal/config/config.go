package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/climassist/internal/store"
	"github.com/abhisek/climassist/internal/weather"
)

// LogFileName is the log file created next to the database when no log file
// is configured.
const LogFileName = "climassist.log"

// Config is the environment-driven configuration. CLI flags override it.
type Config struct {
	DBPath      string  `env:"CLIMASSIST_DB"`
	CatalogPath string  `env:"CLIMASSIST_CATALOG"`
	LogLevel    string  `env:"CLIMASSIST_LOG_LEVEL" envDefault:"info"`
	LogFile     string  `env:"CLIMASSIST_LOG_FILE"`
	Lat         float64 `env:"CLIMASSIST_LAT"       envDefault:"-23.5505"`
	Lng         float64 `env:"CLIMASSIST_LNG"       envDefault:"-46.6333"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath returns flagValue if set, then the configured path, then the
// default XDG location. The parent directory is created.
func (c Config) ResolveDBPath(flagValue string) (string, error) {
	for _, p := range []string{flagValue, c.DBPath} {
		if p != "" {
			if err := store.EnsureDir(p); err != nil {
				return "", fmt.Errorf("create db dir: %w", err)
			}
			return p, nil
		}
	}
	return store.DefaultDBPath()
}

// ResolveCatalogPath returns flagValue if set, else the configured path. An
// empty result means the built-in trails.
func (c Config) ResolveCatalogPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return c.CatalogPath
}

// ResolveLogFile returns the configured log file, or LogFileName in the
// database's directory.
func (c Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), LogFileName)
}

// Location returns the configured home location for alerts.
func (c Config) Location() weather.Location {
	return weather.Location{Lat: c.Lat, Lng: c.Lng}
}
