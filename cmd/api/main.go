package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/barbarashop/storefront-backend/api/routes"
	"github.com/barbarashop/storefront-backend/internal/auth"
	"github.com/barbarashop/storefront-backend/internal/categories"
	"github.com/barbarashop/storefront-backend/internal/products"
	"github.com/barbarashop/storefront-backend/internal/users"
	"github.com/barbarashop/storefront-backend/pkg/auth/session"
	"github.com/barbarashop/storefront-backend/pkg/config"
	"github.com/barbarashop/storefront-backend/pkg/db"
	"github.com/barbarashop/storefront-backend/pkg/logger"
	"github.com/barbarashop/storefront-backend/pkg/metrics"
	"github.com/barbarashop/storefront-backend/pkg/migrate"
	"github.com/barbarashop/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	loginLimiter, err := auth.NewLoginRateLimiter(redisClient, cfg.AuthRateLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create login rate limiter", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		RateLimiter:    loginLimiter,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	categoryRepo := categories.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())

	productService, err := products.NewService(productRepo, categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categoryRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionChecker:  sessionManager,
			AuthService:     authService,
			ProductService:  productService,
			CategoryService: categoryService,
			HTTPMetrics:     metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
