// Package config loads ls-planetarium settings from defaults, a YAML file
// and LSP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// FileName is the config file base name searched for when no explicit path
// is given.
const FileName = "ls-planetarium"

// EnvPrefix prefixes environment overrides, e.g. LSP_OBSERVER_LAT_DEG.
const EnvPrefix = "LSP"

// Config represents the application configuration.
type Config struct {
	Observer ObserverConfig `yaml:"observer" mapstructure:"observer"`
	View     ViewConfig     `yaml:"view" mapstructure:"view"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
}

// ObserverConfig is the observer's location on Earth.
type ObserverConfig struct {
	Name   string  `yaml:"name" mapstructure:"name"`
	LatDeg float64 `yaml:"lat_deg" mapstructure:"lat_deg"`
	LonDeg float64 `yaml:"lon_deg" mapstructure:"lon_deg"`
}

// ViewConfig is the initial projection center and field of view.
type ViewConfig struct {
	CenterAzDeg  float64 `yaml:"center_az_deg" mapstructure:"center_az_deg"`
	CenterAltDeg float64 `yaml:"center_alt_deg" mapstructure:"center_alt_deg"`
	FOVDeg       float64 `yaml:"fov_deg" mapstructure:"fov_deg"`
}

// CatalogConfig points at external catalogue files. Empty paths select the
// embedded catalogue.
type CatalogConfig struct {
	StarsPath     string `yaml:"stars_path" mapstructure:"stars_path"`
	AsterismsPath string `yaml:"asterisms_path" mapstructure:"asterisms_path"`
}

// LogConfig selects the log level and an optional JSON log file.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// DefaultConfig returns an observer in Lausanne looking south.
func DefaultConfig() *Config {
	return &Config{
		Observer: ObserverConfig{Name: "Lausanne", LatDeg: 46.52, LonDeg: 6.57},
		View:     ViewConfig{CenterAzDeg: 180, CenterAltDeg: 15, FOVDeg: 100},
		Log:      LogConfig{Level: "info"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("observer.name", d.Observer.Name)
	v.SetDefault("observer.lat_deg", d.Observer.LatDeg)
	v.SetDefault("observer.lon_deg", d.Observer.LonDeg)
	v.SetDefault("view.center_az_deg", d.View.CenterAzDeg)
	v.SetDefault("view.center_alt_deg", d.View.CenterAltDeg)
	v.SetDefault("view.fov_deg", d.View.FOVDeg)
	v.SetDefault("catalog.stars_path", "")
	v.SetDefault("catalog.asterisms_path", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", []string{})
}

// Load reads the configuration. With an empty path it searches the working
// directory and ~/.config/ls-planetarium and falls back to defaults when
// no file exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate range-checks the observer and view through the astro
// constructors.
func (c *Config) Validate() error {
	if _, err := c.Where(); err != nil {
		return err
	}
	if _, err := c.Center(); err != nil {
		return err
	}
	if c.View.FOVDeg <= 0 || c.View.FOVDeg > 180 {
		return &astro.DomainError{Op: "config.fov", Value: fmt.Sprint(c.View.FOVDeg), Err: astro.ErrValidation}
	}
	if c.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}
	return nil
}

// Where returns the configured observer location.
func (c *Config) Where() (astro.Geographic, error) {
	// Longitudes are configured in [-180°, 180°]; the frame wants [-180°, 180°[.
	lon := c.Observer.LonDeg
	if lon == 180 {
		lon = -180
	}
	return astro.GeographicOfDeg(lon, c.Observer.LatDeg)
}

// Center returns the configured projection center.
func (c *Config) Center() (astro.Horizontal, error) {
	return astro.HorizontalOfDeg(astro.ToDeg(astro.NormalizePositive(astro.OfDeg(c.View.CenterAzDeg))), c.View.CenterAltDeg)
}

// Write saves the configuration as YAML, creating the parent directory.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
