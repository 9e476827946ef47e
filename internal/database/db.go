package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"save-money-go/internal/auth"
	"save-money-go/internal/config"
	"save-money-go/internal/models"
)

// Connect opens the configured database and runs migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Expense{},
		&models.RepeatedTransaction{},
	)
}

// SeedDemoUsers loads the stock demo accounts. It only runs against an empty
// identity table; passwords go through the active hasher.
func SeedDemoUsers(db *gorm.DB, hasher auth.PasswordHasher) error {
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		slog.Info("database already has users, skipping seed")
		return nil
	}

	seeds := []struct {
		username string
		password string
		email    string
		role     models.Role
	}{
		{"admin", "admin", "admin@example.com", models.RoleAdmin},
		{"user", "password", "user@example.com", models.RoleUser},
		{"jane", "password123", "jane@example.com", models.RoleUser},
		{"bob", "mypassword", "bob@example.com", models.RoleUser},
		{"alice", "alicepass", "alice@example.com", models.RoleUser},
	}

	for _, s := range seeds {
		hashed, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", s.username, err)
		}
		u := models.User{
			Username: s.username,
			Password: hashed,
			Email:    s.email,
			Role:     s.role,
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", s.username, err)
		}
	}

	slog.Info("seeded demo users", "count", len(seeds))
	return nil
}
