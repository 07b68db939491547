package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/cache"
	middleware "github.com/nimeshabuddhika/creditpath-web/pkg/middlewares"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"github.com/nimeshabuddhika/creditpath-web/pkg/utils"
	"github.com/nimeshabuddhika/creditpath-web/services/web/configs"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/backend"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/handlers"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/services"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/templates"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "creditpath:session:"
	busyKeyPrefix    = "creditpath:busy:"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Logger *zap.Logger
	Client backend.Client
	Store  session.Store
	Guard  pkg.BusyGuard
	Cookie middleware.CookieOptions
}

// NewRouter builds the Gin engine serving both pages.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	authService := services.NewAuthService(services.AuthServiceConfig{
		Logger: deps.Logger,
		Client: deps.Client,
		Store:  deps.Store,
		Guard:  deps.Guard,
	})
	predictionService := services.NewPredictionService(services.PredictionServiceConfig{
		Logger: deps.Logger,
		Client: deps.Client,
		Guard:  deps.Guard,
	})

	baseHandler := handlers.NewBaseHandler(deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.Logger, authService, deps.Cookie)
	predictionHandler := handlers.NewPredictionHandler(deps.Logger, predictionService, authService, deps.Cookie)

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	baseHandler.RegisterRoutes(r)

	r.Use(middleware.TraceID(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(deps.Store, deps.Cookie, deps.Logger))

	authHandler.RegisterRoutes(r)
	predictionHandler.RegisterRoutes(r)
	return r, nil
}

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Session store and busy guard share one backend
	var (
		store   session.Store
		guard   pkg.BusyGuard
		closers []func()
	)
	switch cfg.SessionStore {
	case configs.SessionStoreRedis:
		redisClient, redisCloser, err := cache.New(ctx, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, redisCloser)
		store = session.NewRedisStore(redisClient, sessionKeyPrefix, cfg.SessionTTL)
		guard = pkg.NewRedisBusyGuard(redisClient, busyKeyPrefix, cfg.BusyTTL, logger)
		logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	default:
		store = session.NewMemoryStore()
		guard = pkg.NewLocalBusyGuard()
		logger.Info("using in-memory session store")
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:         cfg.BackendBaseURL,
		HTTPClient:      utils.NewHTTPClient(utils.WithResponseHeaderTimeout(cfg.BackendResponseHeaderTimeout)),
		Logger:          logger,
		RateLimitPerSec: cfg.BackendRateLimitPerSec,
		Burst:           cfg.BackendRequestBurst,
		MaxThrottleWait: cfg.BackendMaxThrottleWait,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Info("backend configured", zap.String("base_url", client.BaseURL()))

	if err := backend.WaitReady(ctx, logger, client, cfg.BackendProbeMaxWait); err != nil {
		// informational only: the backend may come up later
		logger.Warn("backend not reachable at startup", zap.Error(err))
	}

	r, err := NewRouter(Dependencies{
		Logger: logger,
		Client: client,
		Store:  store,
		Guard:  guard,
		Cookie: middleware.CookieOptions{Secure: cfg.CookieSecure},
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}
	return srv, cleanup, nil
}
