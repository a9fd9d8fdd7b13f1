// Package buildinfo carries version metadata stamped in by the linker.
package buildinfo

// Set with -ldflags "-X github.com/ledgerline/ledgerline/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
