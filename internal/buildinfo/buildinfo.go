// Package buildinfo exposes version information stamped at build time.
package buildinfo

var (
	// Version is the release version, set via -ldflags.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return Version + " (" + Commit + ")"
}
