// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// API Transport - these keys shape how the client reaches the remote service.
const (
	APIBaseURL   = "api.base_url"
	APITimeout   = "api.timeout"
	APIRateLimit = "api.rate_limit"
	APIRateBurst = "api.rate_burst"
	APIUserAgent = "api.user_agent"
)

// Authentication - these keys govern how session credentials are kept between runs.
const (
	AuthRemember    = "auth.remember"
	AuthAutoRefresh = "auth.auto_refresh"
)

// Search Interaction - these keys define defaults for catalog discovery.
const (
	SearchLimit                = "search.limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchContentRating        = "search.content_rating"
)

// Presentation of catalog entries.
const (
	MangaLanguage = "manga.language"
)

// Local caches.
const (
	CacheTagsLifetime = "cache.tags_lifetime"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
