// Package version holds build metadata, set with -ldflags at release time.
package version

import "fmt"

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("navshell v%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
