package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver string
	URL    string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration

	AutoMigrate bool
}

type LogConfig struct {
	Level string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// LoadDotenv loads the given .env files into the process environment.
// Variables already set are left alone and missing files are skipped.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		v := opt(key, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	i32 := func(key string) int32 {
		v := opt(key, "")
		if v == "" {
			return 0
		}
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(n)
	}
	boolean := func(key string, def bool) bool {
		v := opt(key, "")
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:          opt("APP_NAME", "profile-api"),
		Environment:      opt("APP_ENV", "development"),
		HTTPPort:         opt("PORT", opt("HTTP_PORT", "3000")),
		CORSAllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS", "*")),
		ShutdownTimeout:  dur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	cfg.Log = LogConfig{Level: strings.ToLower(opt("LOG_LEVEL", ""))}

	driver := strings.ToLower(opt("DB_DRIVER", DriverPostgres))
	cfg.Database = DatabaseConfig{
		Driver:              driver,
		DBPort:              opt("DB_PORT", "5432"),
		DBSSLMode:           opt("DB_SSL_MODE", "disable"),
		DBUser:              opt("DB_USER", ""),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		ConnectTimeout:      dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        i32("DB_POOL_MAX_CONNS"),
		PoolMinConns:        i32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime: dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime: dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		AutoMigrate:         boolean("DB_AUTO_MIGRATE", true),
	}

	switch driver {
	case DriverMemory:
	case DriverPostgres:
		cfg.Database.URL = opt("DATABASE_URL", "")
		if cfg.Database.URL == "" {
			cfg.Database.DBHost = req("DB_HOST")
			cfg.Database.DBName = req("DB_NAME")
		}
	default:
		invalid = append(invalid, "DB_DRIVER")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s (or set DATABASE_URL)", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
