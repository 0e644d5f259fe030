package config

import (
	"os"
	"strconv"
	"time"

	"gigdispatch/internal/models"
)

type Config struct {
	App      *AppConfig
	Database *DatabaseConfig
	Redis    *RedisConfig
	Security *SecurityConfig
	Rates    models.RateTable
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Port        int
	Debug       bool
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	URI            string
	Database       string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	JWTSecret          string
	JWTAccessTokenTTL  time.Duration
	CORSAllowedOrigins string
}

func Load() (*Config, error) {
	return &Config{
		App: &AppConfig{
			Name:        getEnv("APP_NAME", "gigdispatch"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnvAsInt("APP_PORT", 8080),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
		},
		Database: &DatabaseConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "gigdispatch"),
			MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
			ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		},
		Redis: &RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Security: &SecurityConfig{
			JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
			JWTAccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Rates: loadRateTable(),
	}, nil
}

// loadRateTable starts from the default commission schedule and lets
// deployments override individual rates through the environment.
func loadRateTable() models.RateTable {
	rates := models.DefaultRateTable()
	rates.Commission[models.ServiceTypeRideshare] = getEnvAsFloat64("RATE_RIDESHARE", rates.Commission[models.ServiceTypeRideshare])
	rates.Commission[models.ServiceTypeDelivery] = getEnvAsFloat64("RATE_DELIVERY", rates.Commission[models.ServiceTypeDelivery])
	rates.Commission[models.ServiceTypeCourier] = getEnvAsFloat64("RATE_COURIER", rates.Commission[models.ServiceTypeCourier])
	rates.PremiumRideshare = getEnvAsFloat64("RATE_RIDESHARE_PREMIUM", rates.PremiumRideshare)
	rates.TierDiscount[models.TierPro] = getEnvAsFloat64("DISCOUNT_PRO", rates.TierDiscount[models.TierPro])
	rates.TierDiscount[models.TierElite] = getEnvAsFloat64("DISCOUNT_ELITE", rates.TierDiscount[models.TierElite])
	return rates
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
