package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"rtanks/ratingsworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Ratings site configuration
	BaseURL      string
	FetchTimeout time.Duration

	// Cache configuration
	CacheBackend string // "memory" or "memcache"
	CacheTTL     time.Duration
	MemcacheAddr string

	// Redis configuration (snapshot publisher)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Worker configuration
	RefreshInterval   time.Duration
	RefreshCategories []string
	PublisherEnabled  bool

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	refreshInterval, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_SECONDS", "300"))

	return Config{
		BaseURL:              getEnv("RTANKS_BASE_URL", "https://ratings.ranked-rtanks.online"),
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		CacheBackend:         getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:             time.Duration(cacheTTL) * time.Second,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "rtanks-snapshots"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		RefreshInterval:      time.Duration(refreshInterval) * time.Second,
		RefreshCategories:    []string{"experience"},
		PublisherEnabled:     getEnv("PUBLISHER_ENABLED", "false") == "true",
		Environment:          getEnv("RATINGS_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.NewConfiguration("base URL must not be empty", nil)
	}
	if c.CacheTTL <= 0 {
		return errors.NewConfiguration(fmt.Sprintf("cache TTL must be positive, got %v", c.CacheTTL), nil)
	}
	if c.FetchTimeout <= 0 {
		return errors.NewConfiguration(fmt.Sprintf("fetch timeout must be positive, got %v", c.FetchTimeout), nil)
	}
	if c.CacheBackend != "memory" && c.CacheBackend != "memcache" {
		return errors.NewConfiguration(fmt.Sprintf("unknown cache backend %q", c.CacheBackend), nil)
	}
	if c.RedisStreamCount < 1 {
		return errors.NewConfiguration(fmt.Sprintf("redis stream count must be at least 1, got %d", c.RedisStreamCount), nil)
	}
	return nil
}

// PlayerURL builds the profile page URL for a nickname
func (c *Config) PlayerURL(nickname string) string {
	return c.BaseURL + "/user/" + nickname
}

// LeaderboardURL builds the ratings page URL for a category.
// Every category is served from the root page today; the parameter is kept
// so a page-per-category site change lands here only.
func (c *Config) LeaderboardURL(category string) string {
	return c.BaseURL
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
