// Package version holds build information, overridden at link time with
// -ldflags "-X payoff/internal/version.Version=...".
package version

// Version is the release version
var Version = "0.1.0"

// Commit is the source revision, if known
var Commit = "unknown"
