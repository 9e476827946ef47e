package main

import (
	"log"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"save-money-go/internal/auth"
	"save-money-go/internal/config"
	"save-money-go/internal/database"
	httpserver "save-money-go/internal/http"
	"save-money-go/internal/session"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var hasher auth.PasswordHasher
	switch cfg.AuthHasher {
	case "plain":
		hasher = auth.PlainHasher{}
	default:
		hasher = auth.NewBcryptHasher()
	}

	if cfg.SeedDemo {
		if err := database.SeedDemoUsers(db, hasher); err != nil {
			log.Fatal(err)
		}
	}

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	default:
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	r := httpserver.NewServer(cfg, db, sessions, hasher)
	slog.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
