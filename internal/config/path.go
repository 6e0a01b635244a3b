package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath applies CLI/XDG/home fallback rules for config.json location.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "murmur", "config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for config fallback")
	}

	return filepath.Join(home, ".config", "murmur", "config.json"), nil
}

// ResolveDictionaryPath returns the configured path or the default next to the config.
func ResolveDictionaryPath(cfg Config, configPath string) string {
	if strings.TrimSpace(cfg.Dictionary.Path) != "" {
		return cfg.Dictionary.Path
	}
	return filepath.Join(filepath.Dir(configPath), "dictionary.json")
}
