package app

import (
	"context"

	"go.uber.org/zap"

	"dlmdash/internal/brainapi"
	"dlmdash/internal/config"
	"dlmdash/internal/health"
	"dlmdash/internal/web"
)

// App wires dashboard dependencies.
type App struct {
	server  *web.Server
	monitor *health.Monitor
	logger  *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	api := brainapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Named("brainapi"))
	monitor := health.NewMonitor(api, cfg.Health.Interval, logger.Named("health"))

	router := web.NewRouter(web.Deps{
		API:           api,
		Health:        monitor,
		Logger:        logger.Named("web"),
		SessionSecret: cfg.Web.SessionSecret,
		PageLimit:     cfg.Web.PageLimit,
		QRCacheTTL:    cfg.Web.QRCacheTTL,
	})
	server := web.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:  server,
		monitor: monitor,
		logger:  logger,
	}, nil
}

// Run starts the health monitor and the HTTP server; both stop on ctx cancel.
func (a *App) Run(ctx context.Context) error {
	go a.monitor.Run(ctx)
	return a.server.Run(ctx)
}
