package cache

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // database/sql driver for the sqlite-backed tier
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	sqlDriverName = "sqlite"

	configMagicKey   = "magic"
	configMagicValue = "mason artifact cache"
	configTTLKey     = "ttl"

	// If the remote tier is offline we do not want every operation to
	// produce a connection-failure event, but intermittent failures are a
	// useful flakiness signal, so a bounded number still gets through.
	maxConnectionFailureReports = 10
)

// sqlSession is the established connection plus the server-side TTL read
// from the configuration table.
type sqlSession struct {
	db  *sql.DB
	ttl time.Duration
}

type sqlOpener func() (*sql.DB, error)

var _ ports.ArtifactCache = (*SQLCache)(nil)

// SQLCache is the networked tier, backed by two tables: `configuration`
// holding a schema-magic marker and a TTL, and `artifacts` mapping the rule
// key's hex digest to a checksum-prefixed blob.
//
// The connection is established once, asynchronously, at construction. Every
// operation blocks on it bounded by the configured timeout; a timeout kills
// the tier for the rest of the invocation and all operations degrade to
// misses and no-op stores, leaving the local build unaffected.
type SQLCache struct {
	name string
	cfg  domain.SQLCacheSettings
	bus  ports.EventBus

	connected chan struct{}
	sess      *sqlSession // written once before connected closes
	connErr   error

	killed         atomic.Bool
	closed         atomic.Bool
	failureReports atomic.Int64

	// in-flight stores, drained at Close
	inflight sync.Map // *struct{} -> struct{}
	wg       sync.WaitGroup
}

// NewSQLCache creates the tier and starts connecting in the background.
func NewSQLCache(cfg domain.SQLCacheSettings, bus ports.EventBus) *SQLCache {
	return newSQLCache(cfg, bus, func() (*sql.DB, error) {
		return sql.Open(sqlDriverName, cfg.DSN)
	})
}

func newSQLCache(cfg domain.SQLCacheSettings, bus ports.EventBus, open sqlOpener) *SQLCache {
	c := &SQLCache{
		name:      "sql",
		cfg:       cfg,
		bus:       bus,
		connected: make(chan struct{}),
	}
	go c.connect(open)
	return c
}

// connect opens the database, verifies the schema magic and reads the TTL.
// Any failure leaves the tier dead for the invocation.
func (c *SQLCache) connect(open sqlOpener) {
	defer close(c.connected)

	db, err := open()
	if err != nil {
		c.connErr = err
		c.reportConnectionFailure("opening artifact cache database", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		c.connErr = err
		c.reportConnectionFailure("attempting to reach artifact cache", err)
		_ = db.Close()
		return
	}

	if err := verifyMagic(ctx, db); err != nil {
		c.connErr = err
		c.reportConnectionFailure("verifying artifact cache schema", err)
		_ = db.Close()
		return
	}

	ttl, err := readTTL(ctx, db)
	if err != nil {
		c.connErr = err
		c.reportConnectionFailure("reading artifact cache ttl", err)
		_ = db.Close()
		return
	}

	c.sess = &sqlSession{db: db, ttl: ttl}
}

func verifyMagic(ctx context.Context, db *sql.DB) error {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM configuration WHERE key = ?`, configMagicKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCacheSchemaMismatch
	}
	if err != nil {
		return zerr.Wrap(err, "schema verification query failed")
	}
	if value != configMagicValue {
		return zerr.With(domain.ErrCacheSchemaMismatch, "magic", value)
	}
	return nil
}

func readTTL(ctx context.Context, db *sql.DB) (time.Duration, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM configuration WHERE key = ?`, configTTLKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrCacheTTLMalformed
	}
	if err != nil {
		return 0, zerr.Wrap(err, "ttl query failed")
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, zerr.With(domain.ErrCacheTTLMalformed, "ttl", value)
	}
	return time.Duration(seconds) * time.Second, nil
}

// Provision creates the tier's schema and configuration rows. It is meant
// for operators setting up a fresh cache database (and for tests).
func Provision(ctx context.Context, db *sql.DB, ttl time.Duration) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS configuration (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS artifacts (key TEXT PRIMARY KEY, blob BLOB NOT NULL, stored_at INTEGER NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return zerr.Wrap(err, "failed to create cache schema")
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO configuration (key, value) VALUES (?, ?), (?, ?)`,
		configMagicKey, configMagicValue,
		configTTLKey, strconv.Itoa(int(ttl/time.Second)),
	); err != nil {
		return zerr.Wrap(err, "failed to write cache configuration")
	}
	return nil
}

// Name implements ports.ArtifactCache.
func (c *SQLCache) Name() string { return c.name }

// session blocks until the background connection is established, bounded by
// the configured timeout. A timeout cancels the wait and marks the tier
// unusable for the remainder of the invocation so there is no retry storm.
func (c *SQLCache) session() (*sqlSession, bool) {
	if c.killed.Load() {
		return nil, false
	}
	select {
	case <-c.connected:
		if c.sess == nil {
			return nil, false
		}
		return c.sess, true
	case <-time.After(c.cfg.Timeout):
		c.killed.Store(true)
		c.reportConnectionFailure("awaiting artifact cache connection", domain.ErrCacheUnavailable)
		return nil, false
	}
}

// Fetch implements ports.ArtifactCache. Tier-local failures degrade to a
// miss; a checksum mismatch additionally evicts the row and posts a distinct
// event. An entry past the refresh fraction of its TTL is re-stored to reset
// its expiry (lazy refresh, no background sweep).
func (c *SQLCache) Fetch(ctx context.Context, key domain.RuleKey) (domain.CacheResult, []byte) {
	sess, ok := c.session()
	if !ok {
		return domain.CacheMiss(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var blob []byte
	var storedAt int64
	err := sess.db.QueryRowContext(ctx,
		`SELECT blob, stored_at FROM artifacts WHERE key = ?`, key.Hex()).Scan(&blob, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CacheMiss(), nil
	}
	if err != nil {
		c.reportConnectionFailure("attempting to fetch "+key.Hex(), err)
		return domain.CacheMiss(), nil
	}

	artifact, err := domain.DecodeArtifact(blob)
	if err != nil {
		c.evictCorrupt(ctx, sess, key, 0, 0)
		return domain.CacheMiss(), nil
	}
	if !artifact.Verify() {
		c.evictCorrupt(ctx, sess, key, artifact.Checksum, artifact.ActualChecksum())
		return domain.CacheMiss(), nil
	}

	age := time.Since(time.Unix(0, storedAt))
	if sess.ttl > 0 && age >= sess.ttl {
		// expired but not yet swept
		_, _ = sess.db.ExecContext(ctx, `DELETE FROM artifacts WHERE key = ?`, key.Hex())
		return domain.CacheMiss(), nil
	}
	if sess.ttl > 0 && age > time.Duration(float64(sess.ttl)*c.cfg.RefreshFraction) {
		// The entry has lived past the refresh fraction of its TTL, so
		// rewrite it to reset the expiry clock.
		c.Store(context.Background(), key, artifact)
	}

	return domain.CacheHit(c.name), artifact.Content
}

func (c *SQLCache) evictCorrupt(ctx context.Context, sess *sqlSession, key domain.RuleKey, expected, actual uint64) {
	_, _ = sess.db.ExecContext(ctx, `DELETE FROM artifacts WHERE key = ?`, key.Hex())
	c.bus.Post(domain.ChecksumMismatchEvent{
		Key:      key,
		Source:   c.name,
		Expected: expected,
		Actual:   actual,
	})
}

// Store implements ports.ArtifactCache. The write runs on a background
// goroutine tracked in the in-flight set; the caller never blocks. Expired
// rows are swept opportunistically on the same goroutine.
func (c *SQLCache) Store(_ context.Context, key domain.RuleKey, artifact domain.Artifact) {
	if !c.StoreSupported() || c.closed.Load() {
		return
	}

	token := new(struct{})
	c.inflight.Store(token, struct{}{})
	c.wg.Add(1)

	go func() {
		defer func() {
			c.inflight.Delete(token)
			c.wg.Done()
		}()

		sess, ok := c.session()
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
		defer cancel()

		now := time.Now().UnixNano()
		if _, err := sess.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO artifacts (key, blob, stored_at) VALUES (?, ?, ?)`,
			key.Hex(), artifact.Encode(), now,
		); err != nil {
			c.reportConnectionFailure("attempting to store "+key.Hex(), err)
			c.bus.Post(domain.StoreFailureEvent{Key: key, Source: c.name, Err: err})
			return
		}

		if sess.ttl > 0 {
			_, _ = sess.db.ExecContext(ctx,
				`DELETE FROM artifacts WHERE stored_at < ?`, now-sess.ttl.Nanoseconds())
		}
	}()
}

// StoreSupported implements ports.ArtifactCache.
func (c *SQLCache) StoreSupported() bool { return !c.cfg.ReadOnly }

// Close implements ports.ArtifactCache. It drains in-flight stores bounded
// by the shutdown grace period; whatever has not finished by then is
// abandoned along with the connection.
func (c *SQLCache) Close() error {
	c.closed.Store(true)

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.cfg.GracePeriod):
		c.killed.Store(true)
	}

	select {
	case <-c.connected:
		if c.sess != nil {
			return c.sess.db.Close()
		}
	default:
		// connection attempt still in flight; do not wait for it at exit
	}
	return nil
}

func (c *SQLCache) reportConnectionFailure(opContext string, err error) {
	if c.failureReports.Add(1) <= maxConnectionFailureReports {
		c.bus.Post(domain.ConnectionFailureEvent{
			Source:  c.name,
			Context: opContext,
			Err:     err,
		})
	}
}
