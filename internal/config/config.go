package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database drivers understood by the database package
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the storage backend.
// For postgres a non-empty DSN wins over the individual connection fields.
type DatabaseConfig struct {
	Driver          string         `mapstructure:"driver"`
	DSN             string         `mapstructure:"dsn"`
	Postgres        PostgresConfig `mapstructure:"postgres"`
	SQLite          SQLiteConfig   `mapstructure:"sqlite"`
	MaxOpenConns    int            `mapstructure:"max_open_conns"`
	MaxIdleConns    int            `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration  `mapstructure:"conn_max_lifetime"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MonitoringConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsPath    string `mapstructure:"metrics_path"`
}

// Addr returns the HTTP listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the redis address
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConnectionString returns the DSN for the configured driver
func (c DatabaseConfig) ConnectionString() string {
	switch c.Driver {
	case DriverSQLite:
		return c.SQLite.Path
	case DriverPostgres:
		if c.DSN != "" {
			return c.DSN
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Postgres.Host, c.Postgres.Port, c.Postgres.User, c.Postgres.Password, c.Postgres.DBName, c.Postgres.SSLMode,
		)
	default:
		return c.DSN
	}
}

// Location describes where samples are stored without exposing credentials
func (c DatabaseConfig) Location() string {
	switch c.Driver {
	case DriverSQLite:
		return "sqlite file " + c.SQLite.Path
	case DriverMemory:
		return "process memory"
	case DriverPostgres:
		if c.DSN == "" {
			return fmt.Sprintf("postgres %s:%d/%s", c.Postgres.Host, c.Postgres.Port, c.Postgres.DBName)
		}
		if u, err := url.Parse(c.DSN); err == nil && u.Host != "" {
			return "postgres " + u.Host + u.Path
		}
		// key=value form
		var host, dbname string
		for _, field := range strings.Fields(c.DSN) {
			key, value, _ := strings.Cut(field, "=")
			switch key {
			case "host":
				host = value
			case "dbname":
				dbname = value
			}
		}
		return fmt.Sprintf("postgres %s/%s", host, dbname)
	default:
		return c.Driver
	}
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	return load(viper.New(), "./config")
}

func load(v *viper.Viper, configPaths ...string) (*Config, error) {
	v.SetEnvPrefix("DBWRITER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Load config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "dbwriter")
	v.SetDefault("database.postgres.password", "blehbleh")
	v.SetDefault("database.postgres.dbname", "dbwriter_python")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.sqlite.path", "bleh.db")
	v.SetDefault("database.max_open_conns", 12)
	v.SetDefault("database.max_idle_conns", 4)
	v.SetDefault("database.conn_max_lifetime", "30m")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "1h")

	// Monitoring defaults
	v.SetDefault("monitoring.metrics_enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", config.Server.Port)
	}

	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.DSN == "" && config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host or dsn is required")
		}
	case DriverSQLite:
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	if config.Cache.Enabled && config.Cache.Host == "" {
		return fmt.Errorf("cache host is required when cache is enabled")
	}
	if config.Monitoring.MetricsEnabled && !strings.HasPrefix(config.Monitoring.MetricsPath, "/") {
		return fmt.Errorf("metrics path must start with /")
	}
	return nil
}
