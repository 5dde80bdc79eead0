// Package version holds build information set at link time.
package version

// Version is the released version, set with
// -ldflags "-X github.com/hashicorp-forge/recipe-builder/internal/version.Version=...".
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from.
var GitCommit = ""

// String returns the version with the commit, when known.
func String() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
