// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	authgooglefeature "github.com/quangoinc/qscore/internal/app/features/authgoogle"
	entriesfeature "github.com/quangoinc/qscore/internal/app/features/entries"
	errorsfeature "github.com/quangoinc/qscore/internal/app/features/errors"
	eventsfeature "github.com/quangoinc/qscore/internal/app/features/events"
	healthfeature "github.com/quangoinc/qscore/internal/app/features/health"
	leaderboardfeature "github.com/quangoinc/qscore/internal/app/features/leaderboard"
	logoutfeature "github.com/quangoinc/qscore/internal/app/features/logout"
	membersfeature "github.com/quangoinc/qscore/internal/app/features/members"
	notificationsfeature "github.com/quangoinc/qscore/internal/app/features/notifications"
	tasksfeature "github.com/quangoinc/qscore/internal/app/features/tasks"
	userinfofeature "github.com/quangoinc/qscore/internal/app/features/userinfo"
	entrystore "github.com/quangoinc/qscore/internal/app/store/entries"
	"github.com/quangoinc/qscore/internal/app/store/oauthstate"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/notify"
	"github.com/quangoinc/qscore/internal/app/system/realtime"
	"github.com/quangoinc/qscore/internal/app/system/undo"
	"go.uber.org/zap"
)

// hub is created here and stopped in Shutdown.
var hub *realtime.Hub

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The wiring order matters: stores
// first, then the notification center and hub they feed, then the
// feature handlers, then the routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	// Stores.
	users := userstore.New(deps.MongoDatabase)
	entries := entrystore.New(deps.MongoDatabase, teamLocation)
	states := oauthstate.New(deps.MongoDatabase)

	// Notification center, undo window, and the realtime hub.
	center := notify.NewCenter(logger)
	undoCoord := undo.NewCoordinator(entries, center, logger)

	hub = realtime.NewHub(deps.MongoDatabase, entries, users, center, teamLocation, logger)
	hub.Start()

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed
	// in. Handlers read it via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication.
	googleHandler := authgooglefeature.NewHandler(sessionMgr, states, users,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.AllowedDomain, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	logoutfeature.MountRoutes(r, logoutHandler)

	userinfoHandler := userinfofeature.NewHandler(users, logger)
	userinfofeature.MountRoutes(r, userinfoHandler)

	// The API surface behind sign-in.
	tasksfeature.MountRoutes(r, tasksfeature.NewHandler(), sessionMgr)

	membersHandler := membersfeature.NewHandler(users, hub, errLog, logger)
	membersfeature.MountRoutes(r, membersHandler, sessionMgr)

	entriesHandler := entriesfeature.NewHandler(entries, undoCoord, hub, errLog, logger)
	entriesfeature.MountRoutes(r, entriesHandler, sessionMgr)

	leaderboardHandler := leaderboardfeature.NewHandler(entries, users, teamLocation, errLog, logger)
	leaderboardfeature.MountRoutes(r, leaderboardHandler, sessionMgr)

	notificationsHandler := notificationsfeature.NewHandler(center, hub, errLog, logger)
	notificationsfeature.MountRoutes(r, notificationsHandler, sessionMgr)

	eventsHandler := eventsfeature.NewHandler(hub, logger)
	eventsfeature.MountRoutes(r, eventsHandler, sessionMgr)

	return r, nil
}
