package version

import "fmt"

var (
	// Version is the semantic version, injected with -ldflags "-X".
	Version = "0.1.0"
	// Commit is the short git SHA of the build.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time, for `battery-alarm version`.
func Full() string {
	return fmt.Sprintf("battery-alarm %s (commit %s, built %s)", Version, Commit, BuildTime)
}
