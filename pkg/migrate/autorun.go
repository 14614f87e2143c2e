package migrate

import (
	"context"
	"fmt"

	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/db"
	"github.com/distrocart/backend/pkg/logger"
)

// MaybeRunDev applies pending migrations on startup in local development only.
// Production deploys run the migrate binary as a separate step.
func MaybeRunDev(ctx context.Context, cfg *config.Config, client *db.Client, log *logger.Logger) error {
	if cfg == nil || client == nil {
		return fmt.Errorf("cfg and client are required")
	}
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if log != nil {
		log.Info(log.WithField(ctx, "dir", DefaultDir), "running startup migrations")
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("acquire sql db: %w", err)
	}

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("startup migrations: %w", err)
	}

	if log != nil {
		log.Info(ctx, "startup migrations complete")
	}
	return nil
}
