package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xeroscommerce/pricing-service/api/controllers"
	"github.com/xeroscommerce/pricing-service/api/routes"
	"github.com/xeroscommerce/pricing-service/internal/cart"
	customer "github.com/xeroscommerce/pricing-service/internal/customers"
	"github.com/xeroscommerce/pricing-service/internal/pricecache"
	"github.com/xeroscommerce/pricing-service/internal/pricing"
	product "github.com/xeroscommerce/pricing-service/internal/products"
	promotion "github.com/xeroscommerce/pricing-service/internal/promotions"
	"github.com/xeroscommerce/pricing-service/pkg/config"
	"github.com/xeroscommerce/pricing-service/pkg/db"
	"github.com/xeroscommerce/pricing-service/pkg/logger"
	"github.com/xeroscommerce/pricing-service/pkg/metrics"
	"github.com/xeroscommerce/pricing-service/pkg/migrate"
	"github.com/xeroscommerce/pricing-service/pkg/money"
	"github.com/xeroscommerce/pricing-service/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pricing-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pricing-api",
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

	surcharge, err := money.Parse(cfg.Pricing.UnverifiedSurchargePercent)
	if err != nil {
		logg.Error(context.Background(), "invalid unverified surcharge percent", err)
		os.Exit(1)
	}
	floor, err := money.Parse(cfg.Pricing.FloorPercent)
	if err != nil {
		logg.Error(context.Background(), "invalid discount floor percent", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	pricingMetrics := metrics.NewPricingMetrics(registry)

	var cache *pricecache.Cache
	if cfg.Pricing.CacheEnabled {
		cache = pricecache.New(redisClient, cfg.Pricing.CacheTTL, pricingMetrics, logg)
	}

	productRepo := product.NewRepository(dbClient.DB())
	customerRepo := customer.NewRepository(dbClient.DB())
	promoRepo := promotion.NewRepository(dbClient.DB())
	promoLookup := promotion.NewLookup(promoRepo)

	pricingService, err := pricing.NewService(
		productRepo,
		customerRepo,
		promoLookup,
		pricing.NewEngine(surcharge),
		pricing.DefaultDiscountConfig(floor),
		cache,
		pricingMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(pricingService)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart pricing service", err)
		os.Exit(1)
	}

	port := cfg.App.Port
	if fromEnv := os.Getenv("PORT"); fromEnv != "" {
		port = fromEnv
	}
	instance := os.Getenv("DYNO")
	if instance == "" {
		instance = "local"
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     ":" + port,
		"instance": instance,
	})
	logg.Info(ctx, "starting http server")

	server := &http.Server{
		Addr: ":" + port,
		Handler: routes.NewRouter(cfg, logg, registry, map[string]controllers.Pinger{
			"db":    dbClient,
			"redis": redisClient,
		}, pricingService, cartService),
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "http server stopped unexpectedly", err)
		os.Exit(1)
	}
}
