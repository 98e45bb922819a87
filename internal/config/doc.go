// Package config handles configuration loading and merging for ddoplot.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--theme, --no-color, --dimension, --fringe, --summary, --log-level)
//  2. Environment variables (DDOPLOT_THEME, DDOPLOT_DIMENSION, DDOPLOT_NO_COLOR, NO_COLOR)
//  3. YAML config file (.ddoplot.yaml in local directory or ~/.config/ddoplot/.ddoplot.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - theme: "default" (colored unicode glyphs) or "mono" (plain ASCII)
//   - no_color: forces the mono theme
//   - dimension: terminal plot size as "width,height"; unset means probe the terminal
//   - mode: "bounds" or "frontier"
//   - summary: print a per-trace summary under the text chart
//   - log_level: logrus level name, "warn" by default
//
// # Environment Variables
//
//   - DDOPLOT_NO_COLOR: boolean, "true" or "1" disables colors
//   - NO_COLOR: any non-empty value disables colors (DDOPLOT_NO_COLOR wins)
//   - DDOPLOT_THEME: theme name
//   - DDOPLOT_DIMENSION: terminal plot size as "width,height"
//
// A malformed --dimension flag is an error. A malformed environment or file
// dimension is kept in ResolvedConfig.DimensionErr and only fails the
// terminal layout; SVG and JSON output never use it.
package config
