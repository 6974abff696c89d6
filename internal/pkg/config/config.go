package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Crawling
	FetchTimeoutSec  int `mapstructure:"FETCH_TIMEOUT_SEC"`
	MaxPagesPerSite  int `mapstructure:"MAX_PAGES_PER_SITE"`
	CrawlDelayMS     int `mapstructure:"CRAWL_DELAY_MS"`
	ContactPageLimit int `mapstructure:"CONTACT_PAGE_LIMIT"`
	ContactDelayMS   int `mapstructure:"CONTACT_DELAY_MS"`

	// Enrichment
	EnrichWorkers int `mapstructure:"ENRICH_WORKERS"`
	JobQueueSize  int `mapstructure:"JOB_QUEUE_SIZE"`

	// Redis page cache (optional)
	CacheEnabled  bool   `mapstructure:"CACHE_ENABLED"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	CacheTTLMin   int    `mapstructure:"CACHE_TTL_MIN"`

	// Lead export sink (optional)
	ExportEnabled   bool   `mapstructure:"EXPORT_ENABLED"`
	ExportBulkURL   string `mapstructure:"EXPORT_BULK_URL"`
	ExportIndexName string `mapstructure:"EXPORT_INDEX_NAME"`
	ExportThreshold int    `mapstructure:"EXPORT_THRESHOLD"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	// Set defaults for configuration values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("FETCH_TIMEOUT_SEC", 15)
	viper.SetDefault("MAX_PAGES_PER_SITE", 3)
	viper.SetDefault("CRAWL_DELAY_MS", 500)
	viper.SetDefault("CONTACT_PAGE_LIMIT", 5)
	viper.SetDefault("CONTACT_DELAY_MS", 300)

	viper.SetDefault("ENRICH_WORKERS", 3)
	viper.SetDefault("JOB_QUEUE_SIZE", 100)

	// Redis defaults
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_MIN", 60)

	// Export sink defaults
	viper.SetDefault("EXPORT_ENABLED", false)
	viper.SetDefault("EXPORT_BULK_URL", "http://localhost:9200/_bulk")
	viper.SetDefault("EXPORT_INDEX_NAME", "scored_leads")
	viper.SetDefault("EXPORT_THRESHOLD", 10)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
