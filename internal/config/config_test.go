package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sample = `
app:
  env: dev
telegram:
  token: "123:abc"
  admin_chat_id: 42
http:
  addr: ":9090"
backend:
  base_url: "http://backend:3000"
  timeout: 5s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Env != "dev" {
		t.Fatalf("app.env = %q, want dev", c.App.Env)
	}
	if c.Telegram.Token != "123:abc" || c.Telegram.AdminChatID != 42 {
		t.Fatalf("unexpected telegram section: %+v", c.Telegram)
	}
	if c.Telegram.TimeoutSec != 30 {
		t.Fatalf("telegram.timeout_sec default = %d, want 30", c.Telegram.TimeoutSec)
	}
	if c.HTTP.Addr != ":9090" {
		t.Fatalf("http.addr = %q", c.HTTP.Addr)
	}
	if c.Backend.BaseURL != "http://backend:3000" || c.Backend.Timeout != 5*time.Second {
		t.Fatalf("unexpected backend section: %+v", c.Backend)
	}
	if c.App.Timezone != "America/Sao_Paulo" {
		t.Fatalf("app.timezone default = %q", c.App.Timezone)
	}
	loc, err := c.Location()
	if err != nil || loc.String() != "America/Sao_Paulo" {
		t.Fatalf("Location = %v, %v", loc, err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_BACKEND_BASE_URL", "http://override:4000")
	c, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Backend.BaseURL != "http://override:4000" {
		t.Fatalf("backend.base_url = %q, want env override", c.Backend.BaseURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	var c Config
	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty config")
	}
	for _, want := range []string{"telegram.token", "backend.base_url", "backend.timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	c, err := Load(writeConfig(t, strings.Replace(sample, "env: dev\n", "env: dev\n  timezone: Mars/Olympus\n", 1)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = c.Validate()
	if err == nil || !strings.Contains(err.Error(), "app.timezone") {
		t.Fatalf("Validate = %v, want app.timezone error", err)
	}
}
