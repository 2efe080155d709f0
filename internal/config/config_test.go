package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// pointHome redirects os.UserHomeDir to a temp dir for the test.
func pointHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	pointHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, DefaultTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := pointHome(t)
	writeConfig(t, home, `{"api_url": "https://tasks.example.com", "request_timeout": "10s"}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com" {
		t.Errorf("APIURL = %q, want file value", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := pointHome(t)
	writeConfig(t, home, `{"api_url": "https://file.example.com"}`)
	t.Setenv("TASKDECK_API_URL", "https://env.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	home := pointHome(t)
	writeConfig(t, home, `{not json`)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}
