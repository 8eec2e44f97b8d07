// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/JayanshJR7/novara-api/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the collection indexes the storefront relies on
// (unique coupon codes, unique user emails, order lookups). Index creation
// is idempotent, so this runs on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.NovaraMongoDatabase)
}
