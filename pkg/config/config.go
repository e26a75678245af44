package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               string
	Env                string
	MongoURI           string
	MongoDatabase      string
	PostgresConnStr    string
	CloudinaryURL      string
	JWTSecret          string
	LogLevel           string
	LogPath            string
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDatabase:      getEnv("MONGO_DATABASE", "grace"),
		PostgresConnStr:    getEnv("POSTGRES_CONN_STR", ""),
		CloudinaryURL:      getEnv("CLOUDINARY_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPath:            getEnv("LOG_PATH", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
