package database

import (
	"fmt"
	"log/slog"

	"antiquefinder/internal/config"
	"antiquefinder/internal/middleware/auth"
	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"
)

// Seed creates the initial admin account when none exists. Bcrypt
// hashing has to happen Go-side, so this runs after migrations instead
// of living in them.
func Seed(admins repository.AdminRepository, cfg *config.Config, logger *slog.Logger) error {
	count, err := admins.Count()
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}

	admin := models.Admin{
		Username: cfg.SeedAdminUsername,
		Password: hash,
	}
	if err := admins.Create(&admin); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	logger.Info("seeded initial admin account", "username", admin.Username)
	if cfg.SeedAdminPassword == "admin" {
		logger.Warn("seed admin uses the default password, change it")
	}
	return nil
}
