package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory and
// in the user config directory.
const FileName = ".ddoplot.yaml"

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	Theme      string
	NoColor    bool
	Dimension  string
	Fringe     bool
	Summary    bool
	LogLevel   string

	// Flags to track if they were explicitly set by the user
	NoColorSet bool
	FringeSet  bool
	SummarySet bool
}

// AppConfig represents the application's configuration from .ddoplot.yaml.
type AppConfig struct {
	Theme     string `yaml:"theme"`
	NoColor   bool   `yaml:"no_color"`
	Dimension string `yaml:"dimension,omitempty"`
	Mode      string `yaml:"mode"`
	Summary   bool   `yaml:"summary"`
	LogLevel  string `yaml:"log_level"`

	// Path is where the configuration was read from; empty for defaults.
	Path string `yaml:"-"`
}

// Constants for default values.
const (
	DefaultTheme    = "default"
	DefaultMode     = "bounds"
	DefaultLogLevel = "warn"
)

// Defaults returns the configuration used when no file is found.
func Defaults() *AppConfig {
	return &AppConfig{
		Theme:    DefaultTheme,
		Mode:     DefaultMode,
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig loads the configuration file. An explicit path must exist and
// parse. A discovered file that cannot be read or parsed is reported as a
// warning and the defaults are used.
func LoadConfig(explicit string) (*AppConfig, error) {
	if explicit != "" {
		cfg, err := readConfig(explicit)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	path := getConfigPath()
	if path == "" {
		logrus.Debug("no config file found, using defaults")
		return Defaults(), nil
	}
	cfg, err := readConfig(path)
	if err != nil {
		logrus.WithError(err).Warn("ignoring config file")
		return Defaults(), nil
	}
	return cfg, nil
}

func readConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fromFile AppConfig
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Merge YAML settings onto the defaults
	cfg := Defaults()
	cfg.Path = path
	if fromFile.Theme != "" {
		cfg.Theme = fromFile.Theme
	}
	if fromFile.Mode != "" {
		cfg.Mode = fromFile.Mode
	}
	if fromFile.LogLevel != "" {
		cfg.LogLevel = fromFile.LogLevel
	}
	cfg.NoColor = fromFile.NoColor
	cfg.Summary = fromFile.Summary
	cfg.Dimension = fromFile.Dimension

	logrus.WithField("path", path).Debug("loaded config")
	return cfg, nil
}

// getConfigPath tries to find the .ddoplot.yaml configuration file.
// It checks local directory first, then the user config directory.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	userPath := filepath.Join(configHome, "ddoplot", FileName)
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	} else if !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).WithField("path", userPath).Debug("config file not accessible")
	}
	return ""
}
