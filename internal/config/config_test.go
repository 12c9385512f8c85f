package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "liftlog"
  user: "liftlog"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "liftlog" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "liftlog")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled should default to false")
	}
}

// TestEnvOverride verifies that LIFTLOG_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTLOG_DB_HOST", "override-host")
	t.Setenv("LIFTLOG_DB_PORT", "9999")
	t.Setenv("LIFTLOG_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "override-host" {
		t.Errorf("database.host = %q, want %q", cfg.Database.Host, "override-host")
	}
	if cfg.Database.Port != 9999 {
		t.Errorf("database.port = %d, want 9999", cfg.Database.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	// Unchanged fields keep their YAML values.
	if cfg.Database.Name != "liftlog" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "liftlog")
	}
}

// TestLoadMissingRequired verifies that absent required values fail the
// load instead of being silently tolerated.
func TestLoadMissingRequired(t *testing.T) {
	noUser := strings.Replace(validYAML, `user: "liftlog"`, "", 1)
	if _, err := Load(writeTemp(t, noUser)); err == nil {
		t.Error("expected error for missing database.user")
	}

	noKey := strings.Replace(validYAML, `api_key: "test-key-123"`, "", 1)
	if _, err := Load(writeTemp(t, noKey)); err == nil {
		t.Error("expected error for missing auth.api_key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "liftlog", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/liftlog?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestTailscaleValidation(t *testing.T) {
	withTS := validYAML + `
tailscale:
  enabled: true
`
	if _, err := Load(writeTemp(t, withTS)); err == nil {
		t.Error("expected error for enabled tailscale without hostname")
	}
}
