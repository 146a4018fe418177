// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Primeflix is the canonical application identifier used for filesystem paths and CLI branding.
	Primeflix = "primeflix"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent string sent to local extension services.
	UserAgent = "primeflix/" + Version
)
