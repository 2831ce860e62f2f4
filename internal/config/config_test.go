package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusmaster/campus/pkg/client"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CAMPUS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("HOME", "/home/tester")
	for _, k := range []string{"CAMPUS_API_URL", "CAMPUS_STATE_PATH", "CAMPUS_POLL_INTERVAL", "CAMPUS_HTTP_TIMEOUT", "CAMPUS_LOG_FILE", "DEBUG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != client.DefaultBaseURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, client.DefaultBaseURL)
	}
	if cfg.StatePath != filepath.Join("/home/tester", ".campusmaster", "state.db") {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.PollInterval != 30*time.Second || cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("durations = %s, %s; want 30s", cfg.PollInterval, cfg.HTTPTimeout)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CAMPUS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CAMPUS_API_URL", "http://localhost:8080")
	t.Setenv("CAMPUS_STATE_PATH", "/tmp/campus.db")
	t.Setenv("CAMPUS_POLL_INTERVAL", "5s")
	t.Setenv("CAMPUS_HTTP_TIMEOUT", "")
	t.Setenv("CAMPUS_HTTP_TIMEOUT_SECONDS", "12")
	t.Setenv("CAMPUS_LOG_FILE", "")
	t.Setenv("DEBUG", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Fatalf("expected CAMPUS_API_URL override, got %s", cfg.APIURL)
	}
	if cfg.StatePath != "/tmp/campus.db" {
		t.Fatalf("expected CAMPUS_STATE_PATH override, got %s", cfg.StatePath)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("expected CAMPUS_POLL_INTERVAL 5s, got %s", cfg.PollInterval)
	}
	if cfg.HTTPTimeout != 12*time.Second {
		t.Fatalf("expected CAMPUS_HTTP_TIMEOUT_SECONDS 12, got %s", cfg.HTTPTimeout)
	}
	if cfg.LogFile != "debug.log" {
		t.Fatalf("expected DEBUG to select debug.log, got %q", cfg.LogFile)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.env")
	if err := os.WriteFile(path, []byte("CAMPUS_API_URL=http://from-file\nCAMPUS_POLL_INTERVAL=1m\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAMPUS_ENV_FILE", path)
	t.Setenv("CAMPUS_API_URL", "")
	os.Unsetenv("CAMPUS_API_URL") //nolint:errcheck // restored by t.Setenv cleanup
	t.Setenv("CAMPUS_POLL_INTERVAL", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://from-file" {
		t.Errorf("APIURL = %q, want value from file", cfg.APIURL)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Errorf("PollInterval = %s, environment should win over file", cfg.PollInterval)
	}
}
