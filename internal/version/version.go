// Package version holds build metadata for the ddoplot binary.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time:
//
//	-X github.com/dkoosis/ddoplot/internal/version.Version=v0.3.0
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
