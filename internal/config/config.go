package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Persistence  PersistenceConfig
	Redis        RedisConfig
	Badger       BadgerConfig
	Storage      StorageConfig
	Store        StoreConfig
	Monetization MonetizationConfig
	Generator    GeneratorConfig
	Logging      LoggingConfig
	Metrics      MetricsConfig
	Tracing      TracingConfig
}

// PersistenceConfig selects the key-value backend the store is saved to
type PersistenceConfig struct {
	Backend   string // redis, badger
	KeyPrefix string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// BadgerConfig holds embedded key-value store configuration
type BadgerConfig struct {
	Path     string
	InMemory bool
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	URLExpiry       time.Duration
}

// StoreConfig holds store engine limits
type StoreConfig struct {
	LikeCooldown time.Duration
	HistoryLimit int
	LogRetention int
}

// MonetizationConfig holds partner program thresholds
type MonetizationConfig struct {
	ViewsThreshold     int64
	FollowersThreshold int64
	Window             time.Duration
}

// GeneratorConfig holds AI metadata and thumbnail generation settings
type GeneratorConfig struct {
	BaseURL       string
	Token         string
	TextModel     string
	ImageURL      string
	ImageToken    string
	Timeout       time.Duration
	MaxConcurrent int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// MetricsConfig holds metrics export configuration. A zero Port disables
// the scrape endpoint; an empty PushGateway disables pushing on exit.
type MetricsConfig struct {
	Port        int
	PushGateway string
	Job         string
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName string
	Endpoint    string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Persistence defaults
	viper.SetDefault("persistence.backend", "badger")
	viper.SetDefault("persistence.keyPrefix", "")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Badger defaults
	viper.SetDefault("badger.path", "./data/nexus")
	viper.SetDefault("badger.inMemory", false)

	// Storage defaults
	viper.SetDefault("storage.enabled", false)
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accessKeyID", "minioadmin")
	viper.SetDefault("storage.secretAccessKey", "minioadmin")
	viper.SetDefault("storage.bucketName", "thumbnails")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", false)
	viper.SetDefault("storage.urlExpiry", "24h")

	// Store defaults
	viper.SetDefault("store.likeCooldown", "10s")
	viper.SetDefault("store.historyLimit", 50)
	viper.SetDefault("store.logRetention", 100)

	// Monetization defaults
	viper.SetDefault("monetization.viewsThreshold", 10000)
	viper.SetDefault("monetization.followersThreshold", 1000)
	viper.SetDefault("monetization.window", "720h") // 30 days

	// Generator defaults
	viper.SetDefault("generator.baseURL", "https://generativelanguage.googleapis.com/v1beta/openai/")
	viper.SetDefault("generator.token", "")
	viper.SetDefault("generator.textModel", "gemini-3-flash-preview")
	viper.SetDefault("generator.imageURL", "")
	viper.SetDefault("generator.imageToken", "")
	viper.SetDefault("generator.timeout", "60s")
	viper.SetDefault("generator.maxConcurrent", 3)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")

	// Metrics defaults
	viper.SetDefault("metrics.port", 0)
	viper.SetDefault("metrics.pushGateway", "")
	viper.SetDefault("metrics.job", "nexus")

	// Tracing defaults
	viper.SetDefault("tracing.serviceName", "nexus")
	viper.SetDefault("tracing.endpoint", "")
}
