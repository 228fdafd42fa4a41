// Package buildmeta holds build-time version information injected via
// -ldflags="-X github.com/awstools/ltclone/internal/buildmeta.Version=...".
package buildmeta

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the Git SHA of the build.
	Commit = "none"
)
