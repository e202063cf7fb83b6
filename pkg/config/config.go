package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	VectorSearch VectorSearchConfig
	Engine       EngineConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type VectorSearchConfig struct {
	BaseURL string
	APIKey  string
}

type EngineConfig struct {
	MinQueryLength   int
	DefaultLimit     int
	ExternalTimeout  time.Duration
	ScanTimeout      time.Duration
	ExternalWeight   float64
	LocalWeight      float64
	RefreshInterval  time.Duration
	TrendingCacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Market Search API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "market_search"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		VectorSearch: VectorSearchConfig{
			BaseURL: getEnv("VECTOR_SEARCH_URL", ""),
			APIKey:  getEnv("VECTOR_SEARCH_API_KEY", ""),
		},
		Engine: EngineConfig{
			MinQueryLength:   getEnvInt("ENGINE_MIN_QUERY_LENGTH", 2),
			DefaultLimit:     getEnvInt("ENGINE_DEFAULT_LIMIT", 10),
			ExternalTimeout:  getEnvDuration("ENGINE_EXTERNAL_TIMEOUT", 5*time.Second),
			ScanTimeout:      getEnvDuration("ENGINE_SCAN_TIMEOUT", 3*time.Second),
			ExternalWeight:   getEnvFloat("ENGINE_EXTERNAL_WEIGHT", 0.8),
			LocalWeight:      getEnvFloat("ENGINE_LOCAL_WEIGHT", 0.6),
			RefreshInterval:  getEnvDuration("ENGINE_REFRESH_INTERVAL", 5*time.Minute),
			TrendingCacheTTL: getEnvDuration("ENGINE_TRENDING_CACHE_TTL", time.Minute),
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}

	return defaultVal
}
