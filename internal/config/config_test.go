package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "piste"
  user: "piste"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
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
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "piste" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "piste")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
}

// TestEnvOverride verifies that PISTE_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("PISTE_SERVER_PORT", "9999")
	t.Setenv("PISTE_DB_PASSWORD", "env-secret")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Database.Password != "env-secret" {
		t.Errorf("database.password = %q, want env override", cfg.Database.Password)
	}
}

// TestLoadMissingFields verifies validation failures for incomplete configs.
func TestLoadMissingFields(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing port", `
database: {host: localhost, port: 5432, name: piste, user: piste}
auth: {api_key: k}
`},
		{"missing db host", `
server: {port: 8080}
database: {port: 5432, name: piste, user: piste}
auth: {api_key: k}
`},
		{"missing api key", `
server: {port: 8080}
database: {host: localhost, port: 5432, name: piste, user: piste}
`},
		{"tailscale without hostname", `
server: {port: 8080}
database: {host: localhost, port: 5432, name: piste, user: piste}
auth: {api_key: k}
tailscale: {enabled: true}
`},
	}
	for _, tc := range cases {
		if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

// TestDSN verifies the connection string format and sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "piste", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/piste?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
