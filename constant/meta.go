// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Dex is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Dex = "dex"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is sent with every API request unless overridden by configuration.
	UserAgent = Dex + "/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
