// FILE: logrelay/src/internal/version/version.go
package version

import "fmt"

var (
	// Version is set at compile time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Returns a formatted version string
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

// Returns just the version tag
func Short() string {
	return Version
}

// Returns build metadata for status reporting
func Info() map[string]any {
	return map[string]any{
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	}
}
