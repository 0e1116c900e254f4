package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB     int    `mapstructure:"REDIS_AUTH_DB"`
	RedisLiveDB     int    `mapstructure:"REDIS_LIVE_DB"`
	RedisJobQueueDB int    `mapstructure:"REDIS_JOB_QUEUE_DB"`

	// Video room provider (Daily-compatible REST API).
	VideoAPIBaseURL string `mapstructure:"VIDEO_API_BASE_URL"`
	VideoAPIKey     string `mapstructure:"VIDEO_API_KEY"`

	// Session join window: a session is joinable from JoinLeadMinutes before
	// its scheduled start until JoinTrailMinutes after it.
	JoinLeadMinutes  int `mapstructure:"JOIN_LEAD_MINUTES"`
	JoinTrailMinutes int `mapstructure:"JOIN_TRAIL_MINUTES"`

	// Confirmation link time-to-live in hours.
	ConfirmTokenTTLHours int `mapstructure:"CONFIRM_TOKEN_TTL_HOURS"`

	// Base URL used when building confirmation links sent to clients.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// Path to the Firebase service account key used for FCM pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_LIVE_DB", 2)
	viper.SetDefault("REDIS_JOB_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "auralynk")
	viper.SetDefault("VIDEO_API_BASE_URL", "https://api.daily.co/v1")
	viper.SetDefault("VIDEO_API_KEY", "")
	viper.SetDefault("JOIN_LEAD_MINUTES", 15)
	viper.SetDefault("JOIN_TRAIL_MINUTES", 60)
	viper.SetDefault("CONFIRM_TOKEN_TTL_HOURS", 24)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

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

// JoinLead returns the configured lead window as a duration.
func JoinLead() time.Duration {
	return time.Duration(AppConfig.JoinLeadMinutes) * time.Minute
}

// JoinTrail returns the configured trail window as a duration.
func JoinTrail() time.Duration {
	return time.Duration(AppConfig.JoinTrailMinutes) * time.Minute
}

// ConfirmTokenTTL returns the configured confirmation token lifetime.
func ConfirmTokenTTL() time.Duration {
	return time.Duration(AppConfig.ConfirmTokenTTLHours) * time.Hour
}
