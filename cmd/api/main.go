package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/shopkartlabs/shopkart-backend/api/routes"
	"github.com/shopkartlabs/shopkart-backend/internal/blog"
	"github.com/shopkartlabs/shopkart-backend/internal/cart"
	"github.com/shopkartlabs/shopkart-backend/internal/checkout"
	"github.com/shopkartlabs/shopkart-backend/internal/comparison"
	"github.com/shopkartlabs/shopkart-backend/internal/inquiries"
	"github.com/shopkartlabs/shopkart-backend/internal/orders"
	"github.com/shopkartlabs/shopkart-backend/internal/pricing"
	"github.com/shopkartlabs/shopkart-backend/internal/products"
	"github.com/shopkartlabs/shopkart-backend/internal/reviews"
	"github.com/shopkartlabs/shopkart-backend/pkg/config"
	"github.com/shopkartlabs/shopkart-backend/pkg/db"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
	"github.com/shopkartlabs/shopkart-backend/pkg/metrics"
	"github.com/shopkartlabs/shopkart-backend/pkg/migrate"
	"github.com/shopkartlabs/shopkart-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	engine, err := pricing.NewEngine(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing engine", err)
		os.Exit(1)
	}

	productsSvc, err := products.NewService(products.NewRepository(dbClient.DB()))
	exitOnErr(logg, "product service", err)

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	exitOnErr(logg, "cart store", err)

	cartSvc, err := cart.NewService(cartStore, products.NewRepository(dbClient.DB()), engine)
	exitOnErr(logg, "cart service", err)

	checkoutSvc, err := checkout.NewService(cartSvc, products.NewRepository(dbClient.DB()), orders.NewRepository(dbClient.DB()), engine, logg)
	exitOnErr(logg, "checkout service", err)

	reviewsSvc, err := reviews.NewService(reviews.NewRepository(dbClient.DB()))
	exitOnErr(logg, "review service", err)

	comparisonSvc, err := comparison.NewService(products.NewRepository(dbClient.DB()))
	exitOnErr(logg, "comparison service", err)

	ordersSvc, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	exitOnErr(logg, "order service", err)

	inquiriesSvc, err := inquiries.NewService(inquiries.NewRepository(dbClient.DB()))
	exitOnErr(logg, "inquiry service", err)

	blogSvc, err := blog.NewService(blog.NewRepository(dbClient.DB()))
	exitOnErr(logg, "blog service", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Registry:    registry,
			HTTPMetrics: httpMetrics,
			Products:    productsSvc,
			Cart:        cartSvc,
			Checkout:    checkoutSvc,
			Reviews:     reviewsSvc,
			Comparison:  comparisonSvc,
			Orders:      ordersSvc,
			Inquiries:   inquiriesSvc,
			Blog:        blogSvc,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

func exitOnErr(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
