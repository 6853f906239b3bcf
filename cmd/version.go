// Package cmd holds build metadata for the blue-gardener binary.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/thoreinstein/blue-gardener/cmd.Version=1.4.0"
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// BuildInfo formats the build metadata on one line.
func BuildInfo() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
