// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Backend Binding - these keys govern provider extension discovery and strategy selection.
const (
	BackendCandidates = "backend.candidates"
	BackendCategory   = "backend.category"
)

// Content Cache - these keys configure the TTL cache wrapped around every content read.
const (
	CacheEnabled    = "cache.enabled"
	CacheTTLSeconds = "cache.ttl_seconds"
)

// Search Interaction - these keys define the behavior of catalog search.
const (
	SearchPageLimit            = "search.page_limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Performance Accounting - these keys manage timing traces and threshold warnings.
const (
	PerfLogging = "perf.logging"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal output behavior.
const (
	CliColored = "cli.colored"
)
