package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	_ "github.com/joho/godotenv/autoload"

	"github.com/prudhivi99/storefront/internal/auth"
	"github.com/prudhivi99/storefront/internal/cache"
	"github.com/prudhivi99/storefront/internal/config"
	"github.com/prudhivi99/storefront/internal/db"
	"github.com/prudhivi99/storefront/internal/discovery"
	"github.com/prudhivi99/storefront/internal/handlers"
	"github.com/prudhivi99/storefront/internal/messaging"
	"github.com/prudhivi99/storefront/internal/metrics"
	"github.com/prudhivi99/storefront/internal/models"
	"github.com/prudhivi99/storefront/internal/publisher"
	"github.com/prudhivi99/storefront/internal/server"
	"github.com/prudhivi99/storefront/internal/service"
)

const (
	serviceName = "store-api"
	serviceID   = "store-api-1"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	log.Info().Int("port", cfg.Server.Port).Msg("starting store-api")

	ctx := context.Background()

	// PostgreSQL
	database, err := db.NewPostgresDB(cfg.Database)
	must(err)
	defer database.Close()
	must(database.Migrate(ctx))

	// Redis
	redisCache, err := cache.NewRedisCache(cfg.Redis)
	must(err)
	defer redisCache.Close()

	// RabbitMQ
	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL)
	must(err)
	defer rabbitMQ.Close()

	eventPublisher, err := publisher.NewStorePublisher(rabbitMQ)
	must(err)

	// Repositories
	productRepo := db.NewProductRepository(database)
	cachedProducts := db.NewCachedProductRepository(productRepo, redisCache)
	orderRepo := db.NewOrderRepository(database)
	userRepo := db.NewUserRepository(database)

	// Services
	tokens := auth.NewTokenManager(cfg.JWT)
	catalogSvc := service.NewCatalogService(cachedProducts)
	cartSvc := service.NewCartService(orderRepo, cachedProducts, eventPublisher)
	discountSvc := service.NewDiscountService(orderRepo, eventPublisher, cfg.Discount.Every)
	reportSvc := service.NewReportService(orderRepo)
	authSvc := service.NewAuthService(userRepo, tokens)

	if cfg.Seed.Enabled {
		must(seed(ctx, cfg, authSvc, catalogSvc))
		log.Info().Msg("seeded initial data")
	}

	h := handlers.NewHandlers(catalogSvc, cartSvc, discountSvc, reportSvc, authSvc, database)

	m := metrics.NewServerMetrics(serviceName)
	srv := server.New(cfg, h, tokens, m)

	// Consul
	var consul *discovery.ConsulClient
	if cfg.Consul.Enabled {
		consul, err = discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
		must(err)
		must(consul.Register(discovery.ServiceConfig{
			Name: serviceName,
			ID:   serviceID,
			Port: cfg.Server.Port,
			Tags: []string{"api", "store"},
		}))
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn().Msg("shutting down...")

	if consul != nil {
		if err := consul.Deregister(serviceID); err != nil {
			log.Error().Err(err).Msg("failed to deregister from Consul")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// seed creates the admin user and a couple of demo products on first boot.
func seed(ctx context.Context, cfg *config.Config, authSvc *service.AuthService, catalogSvc *service.CatalogService) error {
	if _, err := authSvc.EnsureUser(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		return err
	}

	products, err := catalogSvc.List(ctx)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return nil
	}

	demo := map[string]string{
		"Laptop":   "999.99",
		"Keyboard": "49.50",
	}
	for name, price := range demo {
		p, err := decimal.NewFromString(price)
		if err != nil {
			return err
		}
		req := models.CreateProductRequest{Name: name, Price: &p}
		if _, err := catalogSvc.Create(ctx, &req); err != nil {
			return err
		}
	}

	return nil
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
