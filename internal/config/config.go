package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string     `koanf:"host"`
	Port    int        `koanf:"port"`
	Mode    string     `koanf:"mode"`
	Timeout string     `koanf:"timeout"`
	CORS    CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `koanf:"driver"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	Pool     PoolConfig     `koanf:"pool"`
	// AutoMigrate creates or alters the entity tables at startup.
	AutoMigrate bool `koanf:"auto_migrate"`
	// SlowQuery is the duration above which a statement is logged as slow.
	SlowQuery string `koanf:"slow_query"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// APIConfig holds settings for the generated REST routes.
type APIConfig struct {
	// Prefix is the path every resource is mounted under, e.g. "/api".
	Prefix string `koanf:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// envPrefix marks environment variables that overlay the YAML file.
const envPrefix = "APP__"

// Load reads configuration from a YAML file and overlays environment variables.
// Variables carry the prefix APP__ and use a double underscore between levels,
// so single underscores stay part of the key name:
//
//	APP__SERVER__PORT=9090                   -> server.port
//	APP__DATABASE__POOL__MAX_IDLE_CONNS=20   -> database.pool.max_idle_conns
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var (
	sslModes       = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	secureSSLModes = []string{"require", "verify-ca", "verify-full"}
)

// Validate checks supported values and cross-field constraints. String
// fields are normalized in place: trimmed, and lowercased where the value is
// an enum.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.Server.validate,
		func() error { return c.Database.validate(c.Server.Mode) },
		c.API.validate,
		c.Log.validate,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if err := oneOf("server.mode", &s.Mode, false, gin.DebugMode, gin.ReleaseMode, gin.TestMode); err != nil {
		return err
	}
	if err := portInRange("server.port", s.Port); err != nil {
		return err
	}
	if err := required("server.host", &s.Host, ""); err != nil {
		return err
	}
	if err := optionalDuration("server.timeout", &s.Timeout); err != nil {
		return err
	}
	return optionalDuration("server.cors.max_age", &s.CORS.MaxAge)
}

func (d *DatabaseConfig) validate(mode string) error {
	if err := oneOf("database.driver", &d.Driver, false, "sqlite", "postgres"); err != nil {
		return err
	}

	switch d.Driver {
	case "sqlite":
		if err := required("database.sqlite.path", &d.SQLite.Path, "sqlite"); err != nil {
			return err
		}
	case "postgres":
		if err := d.Postgres.validate(mode); err != nil {
			return err
		}
	}

	if err := optionalDuration("database.pool.conn_max_lifetime", &d.Pool.ConnMaxLifetime); err != nil {
		return err
	}
	return optionalDuration("database.slow_query", &d.SlowQuery)
}

func (p *PostgresConfig) validate(mode string) error {
	if err := required("database.postgres.host", &p.Host, "postgres"); err != nil {
		return err
	}
	if err := portInRange("database.postgres.port", p.Port); err != nil {
		return err
	}
	if err := required("database.postgres.user", &p.User, "postgres"); err != nil {
		return err
	}
	if err := required("database.postgres.dbname", &p.DBName, "postgres"); err != nil {
		return err
	}
	if err := oneOf("database.postgres.sslmode", &p.SSLMode, false, sslModes...); err != nil {
		return err
	}
	if mode == gin.ReleaseMode && !slices.Contains(secureSSLModes, p.SSLMode) {
		return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %s",
			p.SSLMode, gin.ReleaseMode, quoteAll(secureSSLModes))
	}
	return nil
}

// validate normalizes the prefix: empty mounts at the root, otherwise
// "/segment[/...]" without a trailing slash.
func (a *APIConfig) validate() error {
	prefix := strings.TrimSpace(a.Prefix)
	if prefix != "" {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("invalid api.prefix %q: must start with '/'", a.Prefix)
		}
		if strings.ContainsAny(prefix, ":*") {
			return fmt.Errorf("invalid api.prefix %q: must not contain route parameters", a.Prefix)
		}
		prefix = strings.TrimRight(prefix, "/")
	}
	a.Prefix = prefix
	return nil
}

func (l *LogConfig) validate() error {
	if err := oneOf("log.level", &l.Level, true, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	return oneOf("log.format", &l.Format, true, "text", "json")
}

// oneOf trims *v, lowercasing it first when fold is set, and checks it
// against allowed.
func oneOf(field string, v *string, fold bool, allowed ...string) error {
	got := strings.TrimSpace(*v)
	if fold {
		got = strings.ToLower(got)
	}
	if !slices.Contains(allowed, got) {
		return fmt.Errorf("invalid %s %q: must be one of %s", field, *v, quoteAll(allowed))
	}
	*v = got
	return nil
}

// required trims *v and rejects an empty result. A non-empty driver names
// the database driver the field belongs to.
func required(field string, v *string, driver string) error {
	*v = strings.TrimSpace(*v)
	if *v != "" {
		return nil
	}
	if driver != "" {
		return fmt.Errorf("%s is required when driver is %s", field, driver)
	}
	return fmt.Errorf("%s is required", field)
}

func portInRange(field string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", field, port)
	}
	return nil
}

// optionalDuration trims *v; whitespace means unset. A set value must parse
// as a positive Go duration such as "30s" or "24h".
func optionalDuration(field string, v *string) error {
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, *v, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", field, *v)
	}
	return nil
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
