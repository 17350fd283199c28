package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIBaseURL string // remote marketplace API, e.g. http://localhost:8080/api
	Port       string // port the local shell surface listens on
	StateDir   string // where the local state file lives
}

// Load initializes configuration from environment variables or defaults
func Load() *Config {
	// load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		APIBaseURL: getEnv("MARKETPLACE_API_URL", "http://localhost:8080/api"),
		Port:       getEnv("APP_PORT", "7171"),
		StateDir:   getEnv("STATE_DIR", ""),
	}

	if cfg.APIBaseURL == "http://localhost:8080/api" {
		log.Println("Warning: Using default MARKETPLACE_API_URL. Update it in your environment.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
