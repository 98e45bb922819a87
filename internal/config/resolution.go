package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/ddoplot/pkg/chart"
	"github.com/dkoosis/ddoplot/pkg/layout"
)

// Source names where a resolved value came from.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// ResolvedConfig holds the final resolved configuration after applying all priority rules.
type ResolvedConfig struct {
	Theme   string
	NoColor bool
	// Dimension is nil when the terminal should be probed.
	Dimension *layout.Dimension
	// DimensionErr is set when an environment or file dimension is malformed.
	// Only the terminal layout reports it.
	DimensionErr error
	Mode         chart.Mode
	Summary      bool
	LogLevel     logrus.Level

	// Resolution metadata (for debugging)
	ThemeSource     string
	NoColorSource   string
	DimensionSource string
	ModeSource      string
}

// ResolveConfig resolves configuration from all sources with explicit priority
// order: CLI > environment > file > default.
func ResolveConfig(cli CliFlags) (*ResolvedConfig, error) {
	appCfg, err := LoadConfig(cli.ConfigPath)
	if err != nil {
		return nil, err
	}
	return Resolve(cli, appCfg)
}

// Resolve applies CLI flags and environment variables over appCfg.
func Resolve(cli CliFlags, appCfg *AppConfig) (*ResolvedConfig, error) {
	fileSource := SourceDefault
	if appCfg.Path != "" {
		fileSource = SourceFile
	}

	resolved := &ResolvedConfig{
		Theme:           appCfg.Theme,
		NoColor:         appCfg.NoColor,
		Summary:         appCfg.Summary,
		ThemeSource:     fileSource,
		NoColorSource:   fileSource,
		DimensionSource: fileSource,
		ModeSource:      fileSource,
	}

	// Theme: CLI > ENV > file > default
	switch {
	case cli.Theme != "":
		resolved.Theme, resolved.ThemeSource = cli.Theme, SourceCLI
	case os.Getenv("DDOPLOT_THEME") != "":
		resolved.Theme, resolved.ThemeSource = os.Getenv("DDOPLOT_THEME"), SourceEnv
	}

	// NoColor: CLI > ENV > file > default
	if cli.NoColorSet {
		resolved.NoColor, resolved.NoColorSource = cli.NoColor, SourceCLI
	} else if env := getEnvBool("DDOPLOT_NO_COLOR"); env != nil {
		resolved.NoColor, resolved.NoColorSource = *env, SourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		// NO_COLOR is a presence flag: any non-empty value disables colors.
		resolved.NoColor, resolved.NoColorSource = true, SourceEnv
	}
	if resolved.NoColor {
		resolved.Theme = "mono"
	}

	// Dimension: CLI > ENV > file; unset means probe the terminal.
	dimText := appCfg.Dimension
	switch {
	case cli.Dimension != "":
		dimText, resolved.DimensionSource = cli.Dimension, SourceCLI
	case os.Getenv("DDOPLOT_DIMENSION") != "":
		dimText, resolved.DimensionSource = os.Getenv("DDOPLOT_DIMENSION"), SourceEnv
	}
	if dimText != "" {
		d, err := layout.ParseDimension(dimText)
		switch {
		case err == nil:
			resolved.Dimension = &d
		case resolved.DimensionSource == SourceCLI:
			return nil, fmt.Errorf("dimension from %s: %w", resolved.DimensionSource, err)
		default:
			resolved.DimensionErr = fmt.Errorf("dimension from %s: %w", resolved.DimensionSource, err)
			logrus.WithError(err).WithField("source", resolved.DimensionSource).Warn("ignoring malformed dimension")
		}
	} else {
		resolved.DimensionSource = SourceDefault
	}

	// Mode: CLI > file > default
	modeText := appCfg.Mode
	if cli.FringeSet {
		modeText, resolved.ModeSource = "bounds", SourceCLI
		if cli.Fringe {
			modeText = "frontier"
		}
	}
	mode, err := chart.ParseMode(modeText)
	if err != nil {
		return nil, fmt.Errorf("mode from %s: %w", resolved.ModeSource, err)
	}
	resolved.Mode = mode

	if cli.SummarySet {
		resolved.Summary = cli.Summary
	}

	levelText := appCfg.LogLevel
	if cli.LogLevel != "" {
		levelText = cli.LogLevel
	}
	level, err := logrus.ParseLevel(levelText)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	resolved.LogLevel = level

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

func validateResolvedConfig(cfg *ResolvedConfig) error {
	switch cfg.Theme {
	case "default", "mono":
	default:
		return fmt.Errorf("invalid theme %q (must be: default, mono)", cfg.Theme)
	}
	return nil
}
