package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadServiceEnv loads a .env file when present so service credentials can be
// kept out of the config file. Absence of the file is not an error.
func LoadServiceEnv() {
	_ = godotenv.Load()
}

// APIKey resolves a credential by environment variable name.
func APIKey(envName string) string {
	if strings.TrimSpace(envName) == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(envName))
}
