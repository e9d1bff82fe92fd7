package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	AdminKey    string
	LogLevel    string
	BatchSize   int
	SendBuffer  int
}

func Load() *Config {
	// Load .env if present; real env vars always win.
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AdminKey:    getEnv("ADMIN_KEY", "dev-admin-key"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BatchSize:   getEnvInt("CHAT_BATCH_SIZE", 10),
		SendBuffer:  getEnvInt("WS_SEND_BUFFER", 256),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
