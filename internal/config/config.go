// Package config reads client settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/campusmaster/campus/pkg/client"
)

type Config struct {
	APIURL       string
	StatePath    string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	LogFile      string
}

// Load reads the .env file named by CAMPUS_ENV_FILE (default ".env") if it
// exists, then the environment. Variables already set win over the file.
func Load() (Config, error) {
	envFile := getenv("CAMPUS_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load(%s): %w", envFile, err)
	}

	logFile := os.Getenv("CAMPUS_LOG_FILE")
	if logFile == "" && os.Getenv("DEBUG") != "" {
		logFile = "debug.log"
	}

	return Config{
		APIURL:       getenv("CAMPUS_API_URL", client.DefaultBaseURL),
		StatePath:    getenv("CAMPUS_STATE_PATH", defaultStatePath()),
		PollInterval: getenvDuration("CAMPUS_POLL_INTERVAL", 30*time.Second),
		HTTPTimeout:  getenvDuration("CAMPUS_HTTP_TIMEOUT", 30*time.Second),
		LogFile:      logFile,
	}, nil
}

// defaultStatePath returns ~/.campusmaster/state.db, or "" when there is no
// home directory, which leaves the session unpersisted.
func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".campusmaster", "state.db")
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
