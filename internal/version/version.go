package version

import "fmt"

var (
	// Version is the semantic version (injected via ldflags at build time)
	Version = "dev"

	// GitCommit is the git commit hash (injected via ldflags)
	GitCommit = "none"

	// BuildDate is the build timestamp (injected via ldflags)
	BuildDate = "unknown"
)

// String returns a human-readable version string
func String() string {
	return fmt.Sprintf("bercos %s", Version)
}

// Verbose returns a detailed version string
func Verbose() string {
	return fmt.Sprintf("bercos %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
