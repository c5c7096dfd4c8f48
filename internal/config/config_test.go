package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "3000")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.JWT.AccessTTLMinutes != 15 {
		t.Errorf("AccessTTLMinutes = %d, expected 15", cfg.JWT.AccessTTLMinutes)
	}
	if cfg.JWT.RefreshTTLDays != 14 {
		t.Errorf("RefreshTTLDays = %d, expected 14", cfg.JWT.RefreshTTLDays)
	}
	if cfg.Retention.Days != 0 {
		t.Errorf("Retention.Days = %d, expected 0 (disabled)", cfg.Retention.Days)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, expected default %q", cfg.Server.Port, "3000")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
server:
  port: "8080"
jwt:
  secret: file-secret-value
  access_ttl_minutes: 5
  refresh_ttl_days: 7
database:
  driver: sqlite
  dsn: test.db
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.JWT.Secret != "file-secret-value" {
		t.Errorf("Secret = %q, expected %q", cfg.JWT.Secret, "file-secret-value")
	}
	if cfg.JWT.AccessTTLMinutes != 5 {
		t.Errorf("AccessTTLMinutes = %d, expected 5", cfg.JWT.AccessTTLMinutes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret-value")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "30")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.JWT.Secret != "env-secret-value" {
		t.Errorf("Secret = %q, expected %q", cfg.JWT.Secret, "env-secret-value")
	}
	if cfg.JWT.AccessTTLMinutes != 30 {
		t.Errorf("AccessTTLMinutes = %d, expected 30", cfg.JWT.AccessTTLMinutes)
	}
	if cfg.JWT.RefreshTTLDays != 7 {
		t.Errorf("RefreshTTLDays = %d, expected 7", cfg.JWT.RefreshTTLDays)
	}
	if !cfg.Cookie.Secure {
		t.Error("Cookie.Secure should be true")
	}
}

func TestLoad_InvalidTTLEnvIgnored(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JWT.AccessTTLMinutes != 15 {
		t.Errorf("AccessTTLMinutes = %d, expected default 15", cfg.JWT.AccessTTLMinutes)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := DefaultConfig()
		cfg.JWT.Secret = "long-enough-secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, true},
		{"exactly min length secret", func(c *Config) { c.JWT.Secret = "0123456789" }, false},
		{"zero access ttl", func(c *Config) { c.JWT.AccessTTLMinutes = 0 }, true},
		{"negative refresh ttl", func(c *Config) { c.JWT.RefreshTTLDays = -1 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"mysql driver", func(c *Config) { c.Database.Driver = "mysql" }, false},
		{"postgres driver", func(c *Config) { c.Database.Driver = "postgres" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
