package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "PORT", "DB_DRIVER", "DB_MAX_LIFETIME", "COMMENTS_EDIT_MODE", "SEED_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Expected port 8000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.MaxLifetime != 5*time.Minute {
		t.Errorf("Expected 5m lifetime, got %v", cfg.Database.MaxLifetime)
	}
	if cfg.Comments.EditMode != EditModeStrict {
		t.Errorf("Expected strict edit mode, got %s", cfg.Comments.EditMode)
	}
	if cfg.Seed.File != "../../comments.json" {
		t.Errorf("Expected default seed file, got %s", cfg.Seed.File)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", "/tmp/comments.db")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("COMMENTS_EDIT_MODE", "open")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected 5s read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("Expected 3 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Comments.EditMode != EditModeOpen {
		t.Errorf("Expected open edit mode, got %s", cfg.Comments.EditMode)
	}
	if !strings.HasPrefix(cfg.Database.GetDSN(), "file:/tmp/comments.db") {
		t.Errorf("Unexpected sqlite DSN: %s", cfg.Database.GetDSN())
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected fallback 30s, got %v", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"7000\"\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected env to win over file, got %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid postgres", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "missing host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "DB_HOST"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.Path = ""
		}, wantErr: "DB_PATH"},
		{name: "bad edit mode", mutate: func(c *Config) { c.Comments.EditMode = "loose" }, wantErr: "COMMENTS_EDIT_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{Driver: DriverPostgres, Host: "localhost", Name: "comments"},
				Comments: CommentsConfig{EditMode: EditModeStrict},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMigrationsDir(t *testing.T) {
	c := &DatabaseConfig{Driver: DriverSQLite, MigrationsPath: "./migrations"}
	if got := c.MigrationsDir(); got != "./migrations/sqlite3" {
		t.Errorf("MigrationsDir() = %s", got)
	}
}
