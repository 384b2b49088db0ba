package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageLocal  = "local"
	StorageRemote = "remote"

	LocalKindFile  = "file"
	LocalKindRedis = "redis"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage: "local" keeps everything in the key-value store, "remote" in postgres
	StorageBackend   string `toml:"storage_backend"`
	LocalStorageKind string `toml:"local_storage_kind"`
	LocalStorageDir  string `toml:"local_storage_dir"`
	RunMigrations    bool   `toml:"run_migrations"`

	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	LoginRateLimitAllowedPerMin int    `toml:"login_rate_limit_allowed_per_min"`
	SessionTTL                  string `toml:"session_ttl"`
	SessionCleanupSchedule      string `toml:"session_cleanup_schedule"`
	PasswordHashCost            int    `toml:"password_hash_cost"`

	StatsCacheSizeMB int `toml:"stats_cache_size_mb"`

	AllowedOrigins []string `toml:"allowed_origins"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.StorageBackend == "" {
		c.StorageBackend = StorageLocal
	}
	if c.LocalStorageKind == "" {
		c.LocalStorageKind = LocalKindFile
	}
	if c.LocalStorageDir == "" {
		c.LocalStorageDir = "./data"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "168h"
	}
	if c.SessionCleanupSchedule == "" {
		c.SessionCleanupSchedule = "@every 8h"
	}
	if c.PasswordHashCost == 0 {
		c.PasswordHashCost = 10
	}
	if c.StatsCacheSizeMB == 0 {
		c.StatsCacheSizeMB = 16
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.PostgresMaxConns == 0 {
		c.PostgresMaxConns = 10
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 5 << 20
	}
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageLocal:
		if c.LocalStorageKind != LocalKindFile && c.LocalStorageKind != LocalKindRedis {
			return fmt.Errorf("invalid local storage kind: %s", c.LocalStorageKind)
		}
	case StorageRemote:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return errors.New("remote storage requires postgres host, port and db name")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s", c.StorageBackend)
	}

	if _, err := c.SessionTTLDuration(); err != nil {
		return fmt.Errorf("invalid session ttl: %w", err)
	}

	return nil
}

func (c *Config) SessionTTLDuration() (time.Duration, error) {
	return time.ParseDuration(c.SessionTTL)
}
