package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DBPath      string
	DBDriver    string
	LogLevel    string
	LogFile     string
	CORSOrigins string
	APIToken    string
}

var AppConfig *Config

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		DBPath:      GetEnv("DB_PATH", "./data/notes.db"),
		DBDriver:    GetEnv("DB_DRIVER", "sqlite3"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFile:     GetEnv("LOG_FILE", ""),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
		APIToken:    GetEnv("API_TOKEN", ""),
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite3 or sqlite, got %q", cfg.DBDriver)
	}

	AppConfig = cfg
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
