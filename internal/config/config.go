package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Comment edit modes
const (
	// EditModeStrict allows clients to change only the text of an existing comment.
	EditModeStrict = "strict"
	// EditModeOpen lets clients overwrite author, image and likes as well.
	EditModeOpen = "open"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Comment API behaviour
	Comments CommentsConfig

	// Seed loader configuration
	Seed SeedConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	Path           string // sqlite3 only
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// CommentsConfig holds settings for the comment endpoints
type CommentsConfig struct {
	EditMode string
}

// SeedConfig holds seed loader settings
type SeedConfig struct {
	File string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables and, when CONFIG_FILE
// is set, from that file. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := fromViper(v)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("server_read_timeout", "30s")
	v.SetDefault("server_write_timeout", "60s")
	v.SetDefault("server_shutdown_timeout", "30s")

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "comments")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_path", "./data/comments.db")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_max_lifetime", "5m")
	v.SetDefault("migrations_path", "./migrations")

	v.SetDefault("comments_edit_mode", EditModeStrict)
	v.SetDefault("seed_file", "../../comments.json")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("port"),
			ReadTimeout:     getDurationOrDefault(v, "server_read_timeout", 30*time.Second),
			WriteTimeout:    getDurationOrDefault(v, "server_write_timeout", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault(v, "server_shutdown_timeout", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:         v.GetString("db_driver"),
			Host:           v.GetString("db_host"),
			Port:           v.GetString("db_port"),
			User:           v.GetString("db_user"),
			Password:       v.GetString("db_password"),
			Name:           v.GetString("db_name"),
			SSLMode:        v.GetString("db_sslmode"),
			Path:           v.GetString("db_path"),
			MaxOpenConns:   getIntOrDefault(v, "db_max_open_conns", 25),
			MaxIdleConns:   getIntOrDefault(v, "db_max_idle_conns", 5),
			MaxLifetime:    getDurationOrDefault(v, "db_max_lifetime", 5*time.Minute),
			MigrationsPath: v.GetString("migrations_path"),
		},
		Comments: CommentsConfig{
			EditMode: v.GetString("comments_edit_mode"),
		},
		Seed: SeedConfig{
			File: v.GetString("seed_file"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return errors.New("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return errors.New("DB_NAME is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for sqlite3")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of %s, %s; got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Comments.EditMode != EditModeStrict && c.Comments.EditMode != EditModeOpen {
		return fmt.Errorf("COMMENTS_EDIT_MODE must be %s or %s; got %q", EditModeStrict, EditModeOpen, c.Comments.EditMode)
	}
	return nil
}

// GetDSN returns the connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// MigrationsDir returns the migration directory for the configured driver
func (c *DatabaseConfig) MigrationsDir() string {
	return c.MigrationsPath + "/" + c.Driver
}
