// Package cache is a time-bounded response cache for Store catalog
// details, layered around the catalog fetcher without changing its
// interface. Entries live in a sqlite table with an in-memory LRU in
// front; expiry is checked on read.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

const (
	// DefaultTTL matches the original deployment's 24h catalog cache.
	DefaultTTL = 24 * time.Hour
	// NegativeTTL bounds how long a "not found" result is reused, so
	// newly listed apps become visible within the hour.
	NegativeTTL = time.Hour

	hotEntries = 256
)

const schema = `CREATE TABLE IF NOT EXISTS app_details_cache (
	cache_key TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// FetchFunc fetches a value from the upstream on cache miss.
type FetchFunc[T any] func() (T, error)

type hotEntry struct {
	raw       []byte
	fetchedAt int64
}

// DB manages the sqlite cache database. A nil *DB is valid and simply
// fetches everything, which is how cache-disabled runs work.
type DB struct {
	db  *sql.DB
	mu  sync.RWMutex
	hot *lru.Cache[string, hotEntry]
	now func() time.Time
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	hot, err := lru.New[string, hotEntry](hotEntries)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db: db, hot: hot, now: time.Now}, nil
}

// Close closes the database connection.
func (c *DB) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Purge drops every cached entry. Returns the number of rows deleted.
func (c *DB) Purge() (int64, error) {
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hot.Purge()
	result, err := c.db.Exec("DELETE FROM app_details_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

// GetOrFetch returns the cached value for key if present and younger
// than ttl, otherwise calls fetchFunc and caches what it returns. The
// second return reports whether the value came from cache.
func GetOrFetch[T any](c *DB, key string, ttl time.Duration, fetchFunc FetchFunc[T]) (T, bool, error) {
	return GetOrFetchWithTTL(c, key, fetchFunc, func(T) time.Duration { return ttl })
}

// GetOrFetchWithTTL is GetOrFetch with a per-value TTL, which lets
// callers cache "not found" results for a shorter time than hits. The
// applicable TTL is recomputed from the decoded value at read time.
func GetOrFetchWithTTL[T any](c *DB, key string, fetchFunc FetchFunc[T], ttlFor func(T) time.Duration) (T, bool, error) {
	var zero T
	if c == nil {
		value, err := fetchFunc()
		return value, false, err
	}

	if raw, age, ok := c.lookup(key); ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			if age <= ttlFor(value) {
				return value, true, nil
			}
			c.evict(key)
		} else {
			slog.Warn("Discarding undecodable cache entry", "key", key, "error", err)
			c.evict(key)
		}
	}

	value, err := fetchFunc()
	if err != nil {
		return zero, false, err
	}

	if raw, err := json.Marshal(value); err == nil {
		c.store(key, raw)
	} else {
		slog.Warn("Failed to encode value for caching", "key", key, "error", err)
	}

	return value, false, nil
}

func (c *DB) lookup(key string) ([]byte, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry, ok := c.hot.Get(key); ok {
		return entry.raw, c.now().Sub(time.Unix(entry.fetchedAt, 0)), true
	}

	var (
		data      []byte
		fetchedAt int64
	)
	row := c.db.QueryRow("SELECT data, fetched_at FROM app_details_cache WHERE cache_key = ?", key)
	if err := row.Scan(&data, &fetchedAt); err != nil {
		return nil, 0, false
	}

	c.hot.Add(key, hotEntry{raw: data, fetchedAt: fetchedAt})
	return data, c.now().Sub(time.Unix(fetchedAt, 0)), true
}

func (c *DB) store(key string, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fetchedAt := c.now().Unix()
	c.hot.Add(key, hotEntry{raw: raw, fetchedAt: fetchedAt})
	_, err := c.db.Exec(
		"INSERT INTO app_details_cache (cache_key, data, fetched_at) VALUES (?, ?, ?) ON CONFLICT(cache_key) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at",
		key, raw, fetchedAt,
	)
	if err != nil {
		slog.Warn("Failed to write cache entry", "key", key, "error", err)
	}
}

func (c *DB) evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hot.Remove(key)
	if _, err := c.db.Exec("DELETE FROM app_details_cache WHERE cache_key = ?", key); err != nil {
		slog.Warn("Failed to evict cache entry", "key", key, "error", err)
	}
}
