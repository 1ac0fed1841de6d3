// Package version holds build information stamped in by the linker.
package version

// These variables are populated by the Go linker (LDFLAGS) at build time.
// See magetasks.LDFlags.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
