package bootstrap

import (
	"context"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"github.com/vinodtana/ai-tools-admin-web/internal/api"
	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/dashboard"
	"github.com/vinodtana/ai-tools-admin-web/internal/handlers"
	"github.com/vinodtana/ai-tools-admin-web/internal/importer"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metrics"
	"github.com/vinodtana/ai-tools-admin-web/internal/search"
	"github.com/vinodtana/ai-tools-admin-web/internal/server"
)

// App is a fully wired admin service.
type App struct {
	Config  *config.Config
	Log     logger.Logger
	Storage *Storage
	Redis   *redis.Client
	Search  *es.Client
	Metrics *metrics.Metrics
	Server  *server.Server
}

// NewApp connects every dependency and builds the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	// Phase 1: storage
	store, err := SetupStorage(ctx, cfg, log, true)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log, Storage: store}

	// Phase 2: optional Redis and Elasticsearch
	app.Redis = SetupRedis(ctx, cfg.Redis, log)
	recorder := SetupActivity(app.Redis, cfg.Redis, log)

	repos := store.Repos
	repos.Contents, app.Search = SetupSearch(ctx, cfg.Search, repos.Contents, log)

	// Phase 3: domain services
	var m *metrics.Metrics
	if cfg.Server.Metrics {
		m = metrics.New()
	}
	app.Metrics = m

	svc, bucket, err := SetupContent(ctx, cfg, m, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	dash := dashboard.NewService(repos.Contents, repos.Users, recorder, app.Redis, cfg.Redis.DashboardCacheTTL, log)
	hooks := &handlers.Hooks{Recorder: recorder, Metrics: m, Dashboard: dash, Log: log}

	imp := importer.New(repos.Contents, cfg.Uploads.MaxImages, log).WithPreparer(svc)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(repos.Staff, jwt, log)
	limiter := auth.NewLoginLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst)

	routes := api.Routes(api.Handlers{
		JWT:        jwt,
		Auth:       handlers.NewAuthHandler(authSvc, limiter, log),
		Dashboard:  handlers.NewDashboardHandler(dash, log),
		Media:      handlers.NewMediaHandler(bucket, svc, imp, hooks, log),
		Contents:   handlers.NewContentResource(repos.Contents, svc, hooks),
		Categories: handlers.NewCategoryResource(repos.Categories, hooks),
		Staff:      handlers.NewStaffResource(repos.Staff, hooks),
		Users:      handlers.NewUserResource(repos.Users, hooks),
		Contacts:   handlers.NewContactResource(repos.Contacts, hooks),
		Metrics:    m,
	})

	// Phase 4: HTTP server
	builder := server.NewBuilder(cfg.Service.Name, cfg.Server.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithListener(cfg.Server).
		WithRoutes(routes)

	if m != nil {
		builder = builder.WithMiddleware(m.Middleware())
	}
	if store.DB != nil {
		builder = builder.WithDatabaseHealthCheck(store.Ping)
	}
	if app.Redis != nil {
		builder = builder.WithRedisHealthCheck(func() error {
			return app.Redis.Ping(context.Background()).Err()
		})
	}
	if app.Search != nil {
		builder = builder.WithElasticsearchHealthCheck(func() error {
			return search.Ping(context.Background(), app.Search)
		})
	}

	app.Server = builder.Build()
	return app, nil
}

// Run serves until a shutdown signal or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("Starting HTTP server",
		logger.String("host", a.Config.Server.Host),
		logger.Int("port", a.Config.Server.Port),
		logger.String("storage", a.Storage.Driver),
	)
	if err := a.Server.RunWithGracefulShutdown(ctx); err != nil {
		a.Log.Error("Server error", logger.Error(err))
		return fmt.Errorf("server error: %w", err)
	}
	a.Log.Info("Server exited")
	return nil
}

// Close releases connections opened by NewApp.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Error("Failed to close Redis", logger.Error(err))
		}
	}
	if err := a.Storage.Close(); err != nil {
		a.Log.Error("Failed to close database", logger.Error(err))
	}
}

// Start loads configuration from path and runs the service. A non-empty
// version overrides service.version.
func Start(ctx context.Context, path string, debug bool, version string) error {
	cfg, err := LoadConfig(path, debug)
	if err != nil {
		return err
	}
	if version != "" {
		cfg.Service.Version = version
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
