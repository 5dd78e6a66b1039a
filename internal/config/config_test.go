package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.Storage.Driver)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %v", cfg.JWT.TTL)
	}
	if cfg.App.Timezone != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %s", cfg.App.Timezone)
	}
	if cfg.App.DefaultPaidLeave != 12 || cfg.App.DefaultSickLeave != 6 {
		t.Errorf("expected 12/6 leave defaults, got %v/%v", cfg.App.DefaultPaidLeave, cfg.App.DefaultSickLeave)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DEFAULT_PAID_LEAVE", "18.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.Storage.Driver)
	}
	if cfg.JWT.TTL != 90*time.Minute {
		t.Errorf("expected 90m TTL, got %v", cfg.JWT.TTL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.App.DefaultPaidLeave != 18.5 {
		t.Errorf("expected 18.5, got %v", cfg.App.DefaultPaidLeave)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"bad ttl", map[string]string{"JWT_TTL": "forever"}},
		{"negative ttl", map[string]string{"JWT_TTL": "-1h"}},
		{"bad leave", map[string]string{"DEFAULT_SICK_LEAVE": "six"}},
		{"negative leave", map[string]string{"DEFAULT_PAID_LEAVE": "-1"}},
		{"admin without password", map[string]string{"BOOTSTRAP_ADMIN_EMAIL": "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "hrms", SSLMode: "disable"}

	expected := "host=db port=5432 user=u password=p dbname=hrms sslmode=disable"
	if got := c.DSN(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
