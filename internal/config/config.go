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

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Mongo      MongoConfig
	Completion CompletionConfig
	Redis      RedisConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type CompletionConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

var errInvalidEnv = errors.New("invalid environment variables")

// Load reads an optional .env file and then the process environment.
// Every key has a default; only malformed numeric or duration values fail.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var invalid []string
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	first := func(def string, keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	i32 := func(key string, def int32) int32 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "skill-dashboard"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    first("8080", "HTTP_PORT", "PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", "my_fullstack_journey"),
		DBUser:     opt("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          i32("DB_POOL_MAX_CONNS", 10),
		PoolMinConns:          i32("DB_POOL_MIN_CONNS", 0),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Mongo = MongoConfig{
		URI:        opt("MONGO_URI", "mongodb://localhost:27017"),
		Database:   opt("MONGO_DB", "my_fullstack_journey"),
		Collection: opt("MONGO_COLLECTION", "tech_news"),
	}

	provider := strings.ToLower(opt("AI_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderAnthropic {
		invalid = append(invalid, "AI_PROVIDER")
	}
	cfg.Completion = CompletionConfig{
		Provider: provider,
		APIKey:   first("", "AI_API_KEY", "DEEPSEEK_API_KEY"),
		BaseURL:  opt("AI_BASE_URL", ""),
		Model:    opt("AI_MODEL", ""),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
