package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	AllowOrigins string

	DBDriver   string // "sqlite" or "postgres"
	DBPath     string // sqlite file path
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SessionBackend string // "memory" or "redis"
	SessionTTL     time.Duration
	SecureCookie   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthHasher string // "bcrypt" or "plain"
	SeedDemo   bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func atob(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "http://localhost:3000"),

		DBDriver:   getenv("DB_DRIVER", "sqlite"),
		DBPath:     getenv("DB_PATH", "save-money.db"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "save_money"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		SessionBackend: getenv("SESSION_BACKEND", "memory"),
		SessionTTL:     time.Duration(atoi("SESSION_TTL_HOURS", 720)) * time.Hour,
		SecureCookie:   atob("SECURE_COOKIE", false),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),

		AuthHasher: getenv("AUTH_HASHER", "bcrypt"),
		SeedDemo:   atob("SEED_DEMO_DATA", false),
	}
}
