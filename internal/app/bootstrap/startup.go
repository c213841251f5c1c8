// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// teamLocation is resolved once from config during Startup and shared
// by every component that reasons about days and weeks.
var teamLocation *time.Location

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	loc, err := time.LoadLocation(appCfg.Timezone)
	if err != nil {
		return err
	}
	teamLocation = loc
	logger.Info("team timezone loaded", zap.String("timezone", appCfg.Timezone))
	return nil
}
