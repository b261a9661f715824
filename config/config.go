package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Routing API.
	RoutingAPIURL         string  `mapstructure:"ROUTING_API_URL"`
	RoutingAPIKey         string  `mapstructure:"ROUTING_API_KEY"`
	RoutingTimeoutSeconds int     `mapstructure:"ROUTING_TIMEOUT_SECONDS"`
	RoutingRequestsPerSec float64 `mapstructure:"ROUTING_REQUESTS_PER_SEC"`

	// Distance cache.
	DistanceCacheTTLHours  int  `mapstructure:"DISTANCE_CACHE_TTL_HOURS"`
	DistanceCacheCapacity  int  `mapstructure:"DISTANCE_CACHE_CAPACITY"`
	DistanceRefreshEnabled bool `mapstructure:"DISTANCE_REFRESH_ENABLED"`

	// Scoring.
	ScoringConcurrency int `mapstructure:"SCORING_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "floormatch")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("ROUTING_API_URL", "https://api.openrouteservice.org/v2/directions/driving-car")
	viper.SetDefault("ROUTING_API_KEY", "")
	viper.SetDefault("ROUTING_TIMEOUT_SECONDS", 10)
	viper.SetDefault("ROUTING_REQUESTS_PER_SEC", 20)
	viper.SetDefault("DISTANCE_CACHE_TTL_HOURS", 24)
	viper.SetDefault("DISTANCE_CACHE_CAPACITY", 10000)
	viper.SetDefault("DISTANCE_REFRESH_ENABLED", false)
	viper.SetDefault("SCORING_CONCURRENCY", 8)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
