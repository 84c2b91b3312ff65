// Package config holds the global runtime configuration, populated from
// viper once at startup.
package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// LibrariesFile is the path of the persisted endpoint list.
	LibrariesFile string
	// UserAgent is sent on every outbound request.
	UserAgent string
	// ScrapeTimeout bounds each scraping fetch.
	ScrapeTimeout time.Duration
	// SearchTimeout bounds each catalog search request.
	SearchTimeout time.Duration
	// SearchRate is the allowed search requests per second.
	SearchRate int
	// CacheDBFile is the SQLite page cache path.
	CacheDBFile string
	// CacheTTL is how long cached pages stay valid.
	CacheTTL time.Duration
)

// InitConfig sets defaults and copies values from viper into the
// globals.
func InitConfig() {
	viper.SetDefault("libraries.file", "./libraries.json")
	viper.SetDefault("useragent", "marcgrab/1.0")
	viper.SetDefault("scrape.timeout", "10s")
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.ratelimit", 1)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "24h")

	LibrariesFile = viper.GetString("libraries.file")
	UserAgent = viper.GetString("useragent")
	ScrapeTimeout = parseDuration("scrape.timeout", 10*time.Second)
	SearchTimeout = parseDuration("search.timeout", 15*time.Second)
	SearchRate = viper.GetInt("search.ratelimit")
	CacheDBFile = viper.GetString("cache.dbfile")
	CacheTTL = parseDuration("cache.ttl", 24*time.Hour)
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration in config, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}
