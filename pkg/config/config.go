package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment driven settings for the API server.
type Config struct {
	Env            string
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string

	JWTSecret          string
	JWTRefreshSecret   string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	Database DatabaseConfig
	Redis    RedisConfig

	// RankingCacheTTL bounds how stale the cached engagement ranking may be.
	RankingCacheTTL time.Duration
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
	RunMigrations   bool
}

// RedisConfig contains the optional Redis cache settings. An empty Addr
// disables the cache entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load builds a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("COMMUNITY_ENV", "development"),
		Host:             getEnv("COMMUNITY_HOST", "0.0.0.0"),
		Port:             getEnv("COMMUNITY_PORT", "8080"),
		AllowedOrigins:   splitList(getEnv("COMMUNITY_ALLOWED_ORIGINS", "")),
		LogLevel:         getEnv("COMMUNITY_LOG_LEVEL", "info"),
		JWTSecret:        os.Getenv("COMMUNITY_JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("COMMUNITY_JWT_REFRESH_SECRET"),

		AccessTokenExpiry:  getEnvDuration("COMMUNITY_ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getEnvDuration("COMMUNITY_REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
		RankingCacheTTL:    getEnvDuration("COMMUNITY_RANKING_CACHE_TTL", 5*time.Minute),

		Database: DatabaseConfig{
			Host:            getEnv("COMMUNITY_DB_HOST", "localhost"),
			Port:            getEnv("COMMUNITY_DB_PORT", "5432"),
			User:            getEnv("COMMUNITY_DB_USER", "postgres"),
			Password:        os.Getenv("COMMUNITY_DB_PASSWORD"),
			Name:            getEnv("COMMUNITY_DB_NAME", "community"),
			SSLMode:         getEnv("COMMUNITY_DB_SSLMODE", "disable"),
			TimeZone:        getEnv("COMMUNITY_DB_TIMEZONE", "UTC"),
			MaxIdleConns:    getEnvInt("COMMUNITY_DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("COMMUNITY_DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvInt("COMMUNITY_DB_CONN_MAX_LIFETIME", 1800),
			ConnMaxIdleTime: getEnvInt("COMMUNITY_DB_CONN_MAX_IDLE_TIME", 600),
			RunMigrations:   getEnvBool("COMMUNITY_DB_RUN_MIGRATIONS", true),
		},

		Redis: RedisConfig{
			Addr:     os.Getenv("COMMUNITY_REDIS_ADDR"),
			Password: os.Getenv("COMMUNITY_REDIS_PASSWORD"),
			DB:       getEnvInt("COMMUNITY_REDIS_DB", 0),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("COMMUNITY_JWT_SECRET is required")
	}
	if cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("COMMUNITY_JWT_REFRESH_SECRET is required")
	}

	return cfg, nil
}

// ServerAddress returns the host:port the HTTP server binds.
func (c *Config) ServerAddress() string {
	return c.Host + ":" + c.Port
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN renders the Postgres connection string for GORM.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.TimeZone)
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
