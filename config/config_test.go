package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://ratings.ranked-rtanks.online", config.BaseURL)
	assert.Equal(t, 300*time.Second, config.CacheTTL)
	assert.Equal(t, 30*time.Second, config.FetchTimeout)
	assert.Equal(t, "memory", config.CacheBackend)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, 1, config.RedisStreamCount)
	assert.False(t, config.PublisherEnabled)

	// Test with environment variables
	os.Setenv("RTANKS_BASE_URL", "https://ratings.example.com")
	os.Setenv("CACHE_TTL_SECONDS", "60")
	os.Setenv("CACHE_BACKEND", "memcache")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("PUBLISHER_ENABLED", "true")

	config = LoadConfig()
	assert.Equal(t, "https://ratings.example.com", config.BaseURL)
	assert.Equal(t, 60*time.Second, config.CacheTTL)
	assert.Equal(t, "memcache", config.CacheBackend)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.True(t, config.PublisherEnabled)

	// Clean up
	os.Unsetenv("RTANKS_BASE_URL")
	os.Unsetenv("CACHE_TTL_SECONDS")
	os.Unsetenv("CACHE_BACKEND")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("PUBLISHER_ENABLED")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	invalid := config
	invalid.BaseURL = ""
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.CacheTTL = 0
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.FetchTimeout = -time.Second
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.CacheBackend = "disk"
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.RedisStreamCount = 0
	assert.Error(t, invalid.Validate())
}

func TestURLBuilders(t *testing.T) {
	config := Config{BaseURL: "https://ratings.example.com"}
	assert.Equal(t, "https://ratings.example.com/user/Foo", config.PlayerURL("Foo"))
	// The ratings page serves every category from its root today
	assert.Equal(t, "https://ratings.example.com", config.LeaderboardURL("experience"))
	assert.Equal(t, "https://ratings.example.com", config.LeaderboardURL("kills"))
}
