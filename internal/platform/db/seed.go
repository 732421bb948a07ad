package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"timepay/internal/domain/auth"
	"timepay/internal/platform/config"
)

// Seed creates the initial admin account when one is configured and does
// not already exist. Worker accounts arrive through the roster API.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", cfg.SeedAdminEmail).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (name, email, role, password_hash, hourly_rate, active)
    VALUES ('Administrator', $1, 'admin', $2, 0, true)
  `, cfg.SeedAdminEmail, hash)
	if err != nil {
		return err
	}
	slog.Info("seeded admin account", "email", cfg.SeedAdminEmail)
	return nil
}
