// Package config handles loading and parsing the console configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/hermadata/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	api_url = "127.0.0.1:8050"
//
//	[cache]
//	lookup_ttl_seconds = 3600
//	search_ttl_seconds = 30
//	detail_ttl_seconds = 300
//	stats_ttl_seconds = 60
//	retention_seconds = 60
//	stats_refresh_seconds = 30
//
// All fields are optional. Tilde expansion is performed on the config
// path automatically.
//
// # Cache Tuning
//
// The [cache] section maps directly onto the query cache's per-kind
// policy: lookup lists (races, provinces, ...) hold for an hour by
// default because they change only when the backend is reconfigured,
// search windows hold for thirty seconds, single records for five
// minutes. Retention is the grace period an unreferenced cache entry
// survives after its last subscriber leaves, so switching views back and
// forth within it costs no refetch.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// TOML parse errors. A missing file is NOT an error — defaults are used
// instead, so the console works out of the box against a local backend.
package config
