package domain

import "time"

// DirCacheSettings configures the local directory cache tier.
type DirCacheSettings struct {
	// Enabled toggles the tier.
	Enabled bool
	// Path is the cache root directory. Relative paths resolve against the
	// workspace root.
	Path string
}

// SQLCacheSettings configures the SQL-backed remote cache tier.
type SQLCacheSettings struct {
	// Enabled toggles the tier.
	Enabled bool
	// DSN is the database/sql data source name.
	DSN string
	// ReadOnly disables stores to this tier.
	ReadOnly bool
	// Timeout bounds how long an operation waits for the background
	// connection before degrading to a miss.
	Timeout time.Duration
	// RefreshFraction is the fraction of the server-side TTL after which a
	// fetched entry is opportunistically re-stored to reset its expiry.
	RefreshFraction float64
	// GracePeriod bounds how long Close waits for in-flight stores.
	GracePeriod time.Duration
}

// CacheSettings groups the tier configurations, in fetch order.
type CacheSettings struct {
	Dir DirCacheSettings
	SQL SQLCacheSettings
}

// Settings carries the invocation-level knobs loaded from configuration.
type Settings struct {
	// Parallelism is the worker pool size; zero means NumCPU.
	Parallelism int
	// TraceKeys enables recording of per-rule key contribution traces.
	TraceKeys bool
	// Cache holds the artifact cache tier settings.
	Cache CacheSettings
}

// Defaults for SQL tier knobs; the TTL itself lives server-side in the
// configuration table.
const (
	DefaultSQLTimeout      = 10 * time.Second
	DefaultRefreshFraction = 0.5
	DefaultGracePeriod     = 15 * time.Second
)

// Normalize fills unset SQL knobs with their defaults.
func (s *Settings) Normalize() {
	if s.Cache.SQL.Timeout <= 0 {
		s.Cache.SQL.Timeout = DefaultSQLTimeout
	}
	if s.Cache.SQL.RefreshFraction <= 0 || s.Cache.SQL.RefreshFraction > 1 {
		s.Cache.SQL.RefreshFraction = DefaultRefreshFraction
	}
	if s.Cache.SQL.GracePeriod <= 0 {
		s.Cache.SQL.GracePeriod = DefaultGracePeriod
	}
}
