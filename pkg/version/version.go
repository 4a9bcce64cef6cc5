// Package version holds build metadata injected with -ldflags.
package version

import "fmt"

var (
	// Version is the release version of promptline.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// String returns the version line printed by --version
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
