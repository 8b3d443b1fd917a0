package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/restaurant-pos/internal/application/service"
	"github.com/sangkips/restaurant-pos/internal/config"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/database"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/jobs"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/repository"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/handler"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/middleware"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/routes"
	"github.com/sangkips/restaurant-pos/pkg/logger"
	"github.com/sangkips/restaurant-pos/pkg/printer"
	"github.com/sangkips/restaurant-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sequenceRepo := repository.NewReceiptSequenceRepository(db)
	tableRepo := repository.NewTableRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Receipts are dated in the restaurant's zone
	location, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Database.Timezone).Msg("Unknown timezone, printing receipts in UTC")
		location = time.UTC
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	checkoutService := service.NewCheckoutService(transactor, orderRepo, customerRepo, paymentRepo, saleRepo, sequenceRepo, tableRepo)
	orderService := service.NewOrderService(transactor, orderRepo, tableRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.StoreAddr,
		Phone:     cfg.Printer.Phone,
		TaxID:     cfg.Printer.TaxID,
	}, cfg.Printer.PaperWidth, location)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:    handler.NewOrderHandler(orderService, checkoutService, routes.BasePath),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	scheduler, err := jobs.NewScheduler(idempotencyRepo, cfg.Jobs.IdempotencyCleanup)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule background jobs")
	}
	scheduler.Start()

	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rateLimiter.Cleanup()
			case <-stopCleanup:
				return
			}
		}
	}()

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Str("port", port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	close(stopCleanup)
	scheduler.Stop(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
