package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "INSTAGRAM_CLIENT_ID", "INSTAGRAM_CLIENT_SECRET", "INSTAGRAM_REDIRECT_URI", "LOG_LEVEL", "LOG_FORMAT", "HISTORY_DB"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 5009 {
		t.Errorf("port = %d, want 5009", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.UserAgent != DefaultUserAgent {
		t.Errorf("user agent = %q", cfg.Fetch.UserAgent)
	}
	if cfg.Fetch.MaxBytes != 5*1024*1024 || cfg.Fetch.MaxRedirects != 10 {
		t.Errorf("fetch limits = %d, %d", cfg.Fetch.MaxBytes, cfg.Fetch.MaxRedirects)
	}
	if cfg.Instagram.RedirectURI != "https://znapsite.com/auth/instagram/callback" {
		t.Errorf("redirect uri = %q", cfg.Instagram.RedirectURI)
	}
	if cfg.Instagram.GraphVersion != "v18.0" {
		t.Errorf("graph version = %q", cfg.Instagram.GraphVersion)
	}
	if cfg.History.DBPath != "" {
		t.Errorf("history should be disabled by default, got %q", cfg.History.DBPath)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8080
fetch:
  timeout: 3s
  user_agent: custom-agent
instagram:
  client_id: from-file
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9090")
	t.Setenv("INSTAGRAM_CLIENT_ID", "")
	t.Setenv("INSTAGRAM_CLIENT_SECRET", "secret")
	t.Setenv("HISTORY_DB", "history.db")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 3*time.Second || cfg.Fetch.UserAgent != "custom-agent" {
		t.Errorf("fetch = %+v", cfg.Fetch)
	}
	if cfg.Instagram.ClientID != "from-file" || cfg.Instagram.ClientSecret != "secret" {
		t.Errorf("instagram = %+v", cfg.Instagram)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.History.DBPath != "history.db" {
		t.Errorf("history = %q", cfg.History.DBPath)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed YAML")
	}

	t.Setenv("PORT", "not-a-number")
	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig() should fail on a non-numeric PORT")
	}
}
