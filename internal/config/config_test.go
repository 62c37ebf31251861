package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.True(t, CacheEnabled)
	assert.Equal(t, "./cache.db", CacheDBFile)
	assert.Equal(t, 24*time.Hour, CacheTTL)
	assert.Equal(t, time.Hour, CacheNegativeTTL)
	assert.Equal(t, 8, AggregateWorkers)
	assert.Equal(t, 8080, ServerPort)
	assert.Equal(t, 60*time.Second, ServerRequestTimeout)
}

func TestInitConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("steam.apikey", "abc123")
	viper.Set("cache.enabled", false)
	viper.Set("aggregate.workers", 3)

	InitConfig()

	assert.Equal(t, "abc123", SteamAPIKey)
	assert.False(t, CacheEnabled)
	assert.Equal(t, 3, AggregateWorkers)
}

func TestSetSteamAPIKey(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	InitConfig()

	SetSteamAPIKey("flag-key")
	assert.Equal(t, "flag-key", SteamAPIKey)

	// Empty flag value keeps the configured key.
	SetSteamAPIKey("")
	assert.Equal(t, "flag-key", SteamAPIKey)
}
