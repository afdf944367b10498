// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for travelhub.
type Config struct {
	DefaultTab    string `mapstructure:"default_tab" yaml:"default_tab"`
	DefaultGuests int    `mapstructure:"default_guests" yaml:"default_guests"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	Ledger        bool   `mapstructure:"ledger" yaml:"ledger"`
	HTTPAddr      string `mapstructure:"http_addr" yaml:"http_addr"`
}

// Default returns the configuration used when no file or env var overrides it.
func Default() *Config {
	return &Config{
		DefaultTab:    "hotels",
		DefaultGuests: 2,
		LogLevel:      "info",
		LogFile:       "",
		Ledger:        true,
		HTTPAddr:      "127.0.0.1:8848",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("travelhub")

	def := Default()
	v.SetDefault("default_tab", def.DefaultTab)
	v.SetDefault("default_guests", def.DefaultGuests)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("ledger", def.Ledger)
	v.SetDefault("http_addr", def.HTTPAddr)

	// Setup ENV binding with TRAVELHUB_ prefix
	v.SetEnvPrefix("TRAVELHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	for _, key := range []string{"default_tab", "default_guests", "log_level", "log_file", "ledger", "http_addr"} {
		if err := v.BindEnv(key, "TRAVELHUB_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		logger.Debug("Loaded global config from %s", globalPath)
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
		logger.Debug("Merged project config from %s", projectPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if _, err := catalog.ParseTab(c.DefaultTab); err != nil {
		return fmt.Errorf("default_tab: %w", err)
	}
	if c.DefaultGuests < 1 {
		return fmt.Errorf("default_guests must be >= 1, got %d", c.DefaultGuests)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Tab returns the parsed default tab, falling back to hotels.
func (c *Config) Tab() catalog.Tab {
	tab, err := catalog.ParseTab(c.DefaultTab)
	if err != nil {
		return catalog.TabHotels
	}
	return tab
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/travelhub/travelhub.yml or $XDG_CONFIG_HOME/travelhub/travelhub.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "travelhub", "travelhub.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "travelhub", "travelhub.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./travelhub.yml in the current working directory.
func ProjectPath() string {
	return "travelhub.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
