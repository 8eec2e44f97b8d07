// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/JayanshJR7/novara-api/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Novara promotes the configured admin_email to the admin role here so a
// fresh deployment has a working back-office login.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		users := userstore.New(deps.NovaraMongoDatabase)
		if err := users.PromoteAdmin(ctx, appCfg.AdminEmail); err != nil {
			// Not fatal: the account may simply not exist yet; it will be
			// promoted on the next restart after registering.
			logger.Warn("admin bootstrap skipped",
				zap.String("email", appCfg.AdminEmail),
				zap.Error(err))
		} else {
			logger.Info("admin user ensured", zap.String("email", appCfg.AdminEmail))
		}
	}
	return nil
}
