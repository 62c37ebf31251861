// Package config holds the viper-backed runtime configuration.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// SteamAPIKey authenticates Web API calls (identity, library,
	// vanity resolution).
	SteamAPIKey string
	// CacheEnabled controls the catalog-detail TTL cache.
	CacheEnabled bool
	// CacheDBFile is the sqlite cache location.
	CacheDBFile string
	// CacheTTL bounds reuse of cached catalog details.
	CacheTTL time.Duration
	// CacheNegativeTTL bounds reuse of cached not-found results.
	CacheNegativeTTL time.Duration
	// AggregateWorkers caps concurrent catalog fetches per request.
	AggregateWorkers int
	// ServerPort is the HTTP listen port.
	ServerPort int
	// ServerRequestTimeout bounds one HTTP request end to end.
	ServerRequestTimeout time.Duration
)

// InitConfig snapshots configuration from viper into the globals.
func InitConfig() {
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.negative_ttl", "1h")
	viper.SetDefault("aggregate.workers", 8)
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.request_timeout", "60s")

	SteamAPIKey = viper.GetString("steam.apikey")
	CacheEnabled = viper.GetBool("cache.enabled")
	CacheDBFile = viper.GetString("cache.dbfile")
	CacheTTL = viper.GetDuration("cache.ttl")
	CacheNegativeTTL = viper.GetDuration("cache.negative_ttl")
	AggregateWorkers = viper.GetInt("aggregate.workers")
	ServerPort = viper.GetInt("server.port")
	ServerRequestTimeout = viper.GetDuration("server.request_timeout")
}

// SetSteamAPIKey overrides the API key, e.g. from a CLI flag.
func SetSteamAPIKey(key string) {
	if key != "" {
		SteamAPIKey = key
	}
}
