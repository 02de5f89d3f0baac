package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file located at
// ENV_PATH, or at defaultPath when ENV_PATH is unset. A missing file is only
// an error when required is set; variables already in the environment win.
func LoadDotEnv(defaultPath string, required bool) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("Loaded environment file", "path", envPath)
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	}
	return fmt.Errorf("load env file %s: %w", envPath, err)
}

// String returns the trimmed value of key, or def when it is unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Bool parses key with strconv.ParseBool. Unset or blank yields def.
func Bool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return b, nil
}
