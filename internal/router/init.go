package router

import (
	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/container"
	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/domain/repository"
	"github.com/oksasatya/microservices-console/internal/infrastructure/redisstore"
	"github.com/oksasatya/microservices-console/internal/infrastructure/remote"
	handlers "github.com/oksasatya/microservices-console/internal/interface/http"
	"github.com/oksasatya/microservices-console/internal/router/modules"
	"github.com/oksasatya/microservices-console/internal/session"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

type ConsoleModuleDeps struct {
	Deps     application.Dependencies
	Checker  *application.HealthChecker
	Sessions *session.Store
	UI       *handlers.UIHandler
	Status   *handlers.StatusHandler
}

// buildConsoleDeps wires the remote collections, the shared status board and
// the session store from the configured endpoints.
func buildConsoleDeps() ConsoleModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	ep := cfg.Endpoints()

	userClient := remote.NewClient(ep.UserAPI, cfg.RemoteTimeout)
	productClient := remote.NewClient(ep.ProductAPI, cfg.RemoteTimeout)

	board := container.GetStatusBoard()
	if board == nil {
		board = application.NewStatusBoard()
	}
	var snapshots application.SnapshotStore
	if s := redisstore.NewStatusSnapshot(container.GetRedis(), 2*cfg.HealthInterval); s != nil {
		snapshots = s
	}
	checker := application.NewHealthChecker(map[entity.Service]repository.HealthProbe{
		entity.UserService:    userClient,
		entity.ProductService: productClient,
	}, board, snapshots, logger)

	deps := application.Dependencies{
		Users:    remote.NewUserRepository(userClient),
		Products: remote.NewProductRepository(productClient),
		Health:   checker,
		Logger:   logger,
	}
	if pub := container.GetRabbitPub(); pub != nil {
		deps.Events = pub
	}

	sessions := session.NewStore(deps, cfg.SessionIdleTTL, cfg.SessionMax, logger)
	renderer := container.GetRenderer()

	container.SetStatusBoard(board)
	container.SetHealthChecker(checker)
	container.SetSessions(sessions)

	return ConsoleModuleDeps{
		Deps:     deps,
		Checker:  checker,
		Sessions: sessions,
		UI:       handlers.NewUIHandler(renderer, logger, cfg.AppName, cfg.HealthInterval),
		Status:   handlers.NewStatusHandler(board, renderer),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	console := buildConsoleDeps()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.AddPage(modules.NewUIModule(console.UI, console.Status, console.Sessions, cookies))
	r.Add(modules.NewStatusModule(console.Status))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
