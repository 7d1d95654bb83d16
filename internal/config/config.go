package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabase     string
	RedisURL          string
	JWTSecret         string
	AdminEmails       []string
	AdminPasswordHash string
	RelayURL          string
	RelayUsername     string
	RelayPassword     string
	StorePhone        string
	StoreEmail        string
	ServerPort        string
	TotalFreeOrders   int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "nimko_store"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:         getEnv("JWT_SECRET", "your_jwt_secret"),
		AdminEmails:       getEnvAsList("ADMIN_EMAILS", "admin@nimkostore.com"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		RelayURL:          getEnv("RELAY_URL", ""),
		RelayUsername:     getEnv("RELAY_USERNAME", ""),
		RelayPassword:     getEnv("RELAY_PASSWORD", ""),
		StorePhone:        getEnv("STORE_PHONE", "923001234567"),
		StoreEmail:        getEnv("STORE_EMAIL", "orders@nimkostore.com"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TotalFreeOrders:   getEnvAsInt("TOTAL_FREE_ORDERS", 20),
	}
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

func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
