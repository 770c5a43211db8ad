package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/chanjin5212/myfarm-storefront/internal/configs"
	customMiddleware "github.com/chanjin5212/myfarm-storefront/internal/delivery/http/middlewares"
	"github.com/chanjin5212/myfarm-storefront/internal/delivery/http/routes"
	"github.com/chanjin5212/myfarm-storefront/internal/handlers"
	"github.com/chanjin5212/myfarm-storefront/internal/helpers"
	"github.com/chanjin5212/myfarm-storefront/internal/messaging"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/apiclient"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/logger"
	"github.com/chanjin5212/myfarm-storefront/internal/pkg/redis"
	"github.com/chanjin5212/myfarm-storefront/internal/repositories"
	"github.com/chanjin5212/myfarm-storefront/internal/services"
	"github.com/chanjin5212/myfarm-storefront/internal/views"
)

func main() {
	log := logger.NewLogger()

	cfg, err := configs.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Redis
	redisClient, err := redis.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		log.Fatalf("Failed to create Redis client: %v", err)
	}
	defer redisClient.Close()

	// Upstream REST API
	api := apiclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	// RabbitMQ (optional)
	publisher, closePublisher := newActivityPublisher(cfg.RabbitMQ, log)
	defer closePublisher()

	// Dependency Injection
	validate := helpers.NewValidator()
	sessionRepo := repositories.NewSessionRepository(redisClient, cfg.Session.TTL, log)

	authService := services.NewAuthService(api, publisher, validate, log)
	registrationService := services.NewRegistrationService(api, publisher, validate, log)
	recoveryService := services.NewRecoveryService(api, publisher, validate, log)
	productService := services.NewProductService(api, redisClient, cfg.Cache, validate, log)
	orderService := services.NewOrderService(api, validate, log)
	shippingService := services.NewShippingService(api, validate, log)
	reviewService := services.NewReviewService(api, validate, log)
	cartService := services.NewCartService(api, validate, log)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	rateLimiter := customMiddleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go rateLimiter.Run(sweepCtx, time.Minute, cfg.RateLimit.IdleTTL)

	// Setup Server Web
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(customMiddleware.LoggingMiddleware(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, customMiddleware.HeaderPagePath},
		AllowCredentials: true,
	}))

	routes.InitRoutes(e, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, log),
		Registration: handlers.NewRegistrationHandler(registrationService, log),
		Recovery:     handlers.NewRecoveryHandler(recoveryService, log),
		Product:      handlers.NewProductHandler(productService, log),
		Order:        handlers.NewOrderHandler(orderService, log),
		MyPage:       handlers.NewMyPageHandler(shippingService, reviewService, log),
		Cart:         handlers.NewCartHandler(cartService, log),
		Page:         handlers.NewPageHandler(productService, log),
	}, routes.Options{
		Session:     customMiddleware.SessionMiddleware(sessionRepo, cfg.Session, log),
		RateLimiter: rateLimiter,
		AdminToken:  cfg.Server.AdminToken,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
}

func newActivityPublisher(cfg configs.RabbitMQConfig, log *logrus.Logger) (messaging.ActivityPublisher, func()) {
	if cfg.URL == "" {
		log.Warn("RABBITMQ_URL not set, activity events are disabled")
		return messaging.NewNoopPublisher(log), func() {}
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}

	publisher, err := messaging.NewRabbitMQPublisher(ch, cfg.ActivityExchange, log)
	if err != nil {
		log.Fatalf("Failed to setup activity exchange: %v", err)
	}

	log.WithField("exchange", cfg.ActivityExchange).Info("Connected to RabbitMQ")
	return publisher, func() {
		_ = ch.Close()
		_ = conn.Close()
	}
}
