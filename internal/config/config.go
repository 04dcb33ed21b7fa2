package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Job store backends
const (
	JobStoreMemory   = "memory"
	JobStorePostgres = "postgres"
	JobStoreRedis    = "redis"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string
	JobStore    string
	API         APIConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	WooCommerce WooCommerceConfig
	Shopify     ShopifyConfig
	Fetch       FetchConfig
}

type APIConfig struct {
	// KeyHash is the bcrypt hash of the bearer key accepted on /v1 routes
	KeyHash string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	// JobTTL expires stored jobs; zero keeps them
	JobTTL time.Duration
}

type WooCommerceConfig struct {
	URL            string
	ConsumerKey    string
	ConsumerSecret string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	LocationID  string
}

// FetchConfig bounds connector traffic
type FetchConfig struct {
	PageSize           int
	MaxPages           int
	RateLimitPerSecond float64
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	environment := getEnvOrViper("ENVIRONMENT", "development")
	defaultFormat := "console"
	if environment == "production" {
		defaultFormat = "json"
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: environment,
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrViper("LOG_FORMAT", defaultFormat),
		JobStore:    strings.ToLower(getEnvOrViper("JOB_STORE", JobStoreMemory)),
		API: APIConfig{
			KeyHash: getEnvOrViper("API_KEY_HASH", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storemigrate"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:      getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password:  getEnvOrViper("REDIS_PASSWORD", ""),
			DB:        getIntOrViper("REDIS_DB", 0),
			KeyPrefix: getEnvOrViper("REDIS_KEY_PREFIX", "storemigrate:job:"),
			JobTTL:    getDurationOrViper("REDIS_JOB_TTL", 7*24*time.Hour),
		},
		WooCommerce: WooCommerceConfig{
			URL:            strings.TrimSuffix(getEnvOrViper("WOOCOMMERCE_URL", ""), "/"),
			ConsumerKey:    getEnvOrViper("WOOCOMMERCE_CONSUMER_KEY", ""),
			ConsumerSecret: getEnvOrViper("WOOCOMMERCE_CONSUMER_SECRET", ""),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  getEnvOrViper("SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken: getEnvOrViper("SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2024-10"),
			LocationID:  getEnvOrViper("SHOPIFY_LOCATION_ID", ""),
		},
		Fetch: FetchConfig{
			PageSize:           getIntOrViper("FETCH_PAGE_SIZE", 100),
			MaxPages:           getIntOrViper("FETCH_MAX_PAGES", 50),
			RateLimitPerSecond: getFloatOrViper("RATE_LIMIT_PER_SECOND", 2),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings every binary needs
func (c *Config) Validate() error {
	if c.WooCommerce.URL == "" {
		return fmt.Errorf("WOOCOMMERCE_URL is required")
	}
	if c.WooCommerce.ConsumerKey == "" || c.WooCommerce.ConsumerSecret == "" {
		return fmt.Errorf("WOOCOMMERCE_CONSUMER_KEY and WOOCOMMERCE_CONSUMER_SECRET are required")
	}
	if c.Shopify.ShopDomain == "" {
		return fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if c.Shopify.AccessToken == "" {
		return fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}
	switch c.JobStore {
	case JobStoreMemory, JobStorePostgres, JobStoreRedis:
	default:
		return fmt.Errorf("JOB_STORE must be one of memory, postgres, redis: got %q", c.JobStore)
	}
	if c.Fetch.PageSize <= 0 || c.Fetch.PageSize > 250 {
		return fmt.Errorf("FETCH_PAGE_SIZE must be between 1 and 250")
	}
	if c.Fetch.MaxPages <= 0 {
		return fmt.Errorf("FETCH_MAX_PAGES must be positive")
	}
	if c.Fetch.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntOrViper(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnvOrViper(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloatOrViper(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(getEnvOrViper(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDurationOrViper(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnvOrViper(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
