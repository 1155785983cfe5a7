package main

import (
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sunsetfest/booking-backend/config"
	"github.com/sunsetfest/booking-backend/internal/consumer"
	"github.com/sunsetfest/booking-backend/internal/handler"
	"github.com/sunsetfest/booking-backend/internal/middleware"
	"github.com/sunsetfest/booking-backend/internal/repository"
	"github.com/sunsetfest/booking-backend/internal/service"
	"github.com/sunsetfest/booking-backend/internal/worker"
	"github.com/sunsetfest/booking-backend/pkg/cache"
	"github.com/sunsetfest/booking-backend/pkg/database"
	"github.com/sunsetfest/booking-backend/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db := database.NewPostgresDB(cfg.DSN())

	availabilityCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AvailabilityCacheTTL)
	defer availabilityCache.Close()

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
	if err != nil {
		log.Fatalf("failed to connect publisher to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log)
	if err != nil {
		log.Fatalf("failed to connect consumer to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	// Repositories
	txm := repository.NewTxManager(db)
	catalogRepo := repository.NewCatalogRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	holdRepo := repository.NewHoldRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	inventorySvc := service.NewInventoryService(catalogRepo, inventoryRepo, availabilityCache)
	holdSvc := service.NewHoldService(txm, catalogRepo, holdRepo, inventorySvc, service.HoldConfig{
		TTL:         cfg.HoldTTL,
		CombinedTTL: cfg.CombinedHoldTTL,
		MaxLifetime: cfg.HoldMaxLifetime,
	})
	bookingSvc := service.NewBookingService(txm, catalogRepo, holdRepo, bookingRepo, inventoryRepo, inventorySvc, publisher)
	paymentSvc := service.NewPaymentService(txm, paymentRepo, bookingRepo, publisher)

	// Payment bridge: checkout results arrive over RabbitMQ
	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewPaymentConsumer(paymentSvc, cfg.WebhookSecret, log).Start(msgs)

	// Background sweep of long-expired holds
	reaper, err := worker.NewHoldReaper(holdRepo, cfg.ReaperInterval, cfg.ReaperGrace, log)
	if err != nil {
		log.Fatalf("failed to create hold reaper: %v", err)
	}
	if err := reaper.Start(); err != nil {
		log.Fatalf("failed to start hold reaper: %v", err)
	}
	defer reaper.Stop()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(log)
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-backend"})
	})

	handler.NewHoldHandler(holdSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, paymentSvc).RegisterRoutes(e)
	handler.NewAvailabilityHandler(inventorySvc).RegisterRoutes(e)

	log.Infof("booking backend starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
