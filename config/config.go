package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file. Missing files are fine in deployed
// environments where real env vars are set.
func LoadEnv() error {
	return godotenv.Load()
}

// GetEnv returns the value of an environment variable.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault returns the value of an environment variable or a fallback.
func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
