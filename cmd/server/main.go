package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/adapter/cache"
	"github.com/bna-assurances/campaignhub/internal/adapter/external/notification"
	"github.com/bna-assurances/campaignhub/internal/adapter/http/fiber/handlers"
	"github.com/bna-assurances/campaignhub/internal/adapter/http/fiber/middleware"
	"github.com/bna-assurances/campaignhub/internal/adapter/queue"
	"github.com/bna-assurances/campaignhub/internal/adapter/storage/postgres"
	"github.com/bna-assurances/campaignhub/internal/adapter/vault"
	wsAdapter "github.com/bna-assurances/campaignhub/internal/adapter/websocket"
	"github.com/bna-assurances/campaignhub/internal/observability/telemetry"
	"github.com/bna-assurances/campaignhub/internal/ports"
	"github.com/bna-assurances/campaignhub/internal/service/auth"
	campaignsvc "github.com/bna-assurances/campaignhub/internal/service/campaign"
	"github.com/bna-assurances/campaignhub/internal/service/email"
	"github.com/bna-assurances/campaignhub/internal/service/health"
	notificationsvc "github.com/bna-assurances/campaignhub/internal/service/notification"
	usersvc "github.com/bna-assurances/campaignhub/internal/service/user"
	"github.com/bna-assurances/campaignhub/pkg/config"
)

const serviceName = "campaignhub"

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting CampaignHub",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Optional Vault secret overrides
	if cfg.Vault.Enabled {
		applyVaultSecrets(cfg, logger)
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.Tracing.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.App.Version, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 6. Initialize Cache (Redis, in-memory fallback for development)
	var appCache ports.Cache
	appCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue
	messageQueue := newMessageQueue(cfg.Queue, logger)
	if messageQueue != nil {
		defer messageQueue.Close()
	}

	// 8. Initialize Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	campaignRepo := postgres.NewCampaignRepository(db, logger)
	notificationRepo := postgres.NewNotificationRepository(db, logger)

	// 9. Initialize WebSocket Hub (real-time in-app notifications)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	// 10. Initialize Delivery Adapters
	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Mail.Provider,
		FromEmail:      cfg.Mail.FromEmail,
		FromName:       cfg.Mail.FromName,
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		SMTPHost:       cfg.Mail.SMTPHost,
		SMTPPort:       cfg.Mail.SMTPPort,
		SMTPUsername:   cfg.Mail.SMTPUsername,
		SMTPPassword:   cfg.Mail.SMTPPassword,
		SMTPUseTLS:     cfg.Mail.SMTPUseTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}
	smsService := notification.NewSMSAdapter(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber, logger)

	// 11. Initialize Services (Business Logic Layer)
	authService := auth.NewService(userRepo, appCache, emailService, smsService,
		cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.App.BaseURL, logger)
	userService := usersvc.NewService(userRepo, logger)
	notificationService := notificationsvc.NewService(notificationRepo, appCache, wsHub, logger)
	dispatcher := campaignsvc.NewDispatcher(emailService, smsService, logger)
	campaignService := campaignsvc.NewService(campaignRepo, userRepo, notificationService, dispatcher, messageQueue, logger)

	// 12. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))

	// Health Check Endpoints
	healthService := health.NewService(sqlDB, appCache, cfg.App.Version, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsPath := cfg.Prometheus.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		app.Get(metricsPath, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API Routes
	api := app.Group("/api")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(authService, logger)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/forgot-password", authHandler.ForgotPassword)
	api.Post("/auth/reset-password", authHandler.ResetPassword)
	api.Post("/auth/reset-password/code", authHandler.ResetPasswordWithCode)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired(authService))
	protected.Post("/auth/logout", authHandler.Logout)

	// User routes
	userHandler := handlers.NewUserHandler(userService, logger)
	protected.Get("/users/me", userHandler.Me)
	protected.Put("/users/me/profile", userHandler.CompleteProfile)
	protected.Get("/users", middleware.AdminOnly(), userHandler.List)
	protected.Put("/users/:id", middleware.AdminOnly(), userHandler.Update)
	protected.Delete("/users/:id", middleware.AdminOnly(), userHandler.Delete)

	// Campaign routes (staff only, moderation is admin only)
	campaignHandler := handlers.NewCampaignHandler(campaignService, logger)
	campaigns := protected.Group("/campaigns", middleware.StaffOnly())
	campaigns.Post("/", campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Get("/:id", campaignHandler.Get)
	campaigns.Put("/:id", campaignHandler.Update)
	campaigns.Delete("/:id", campaignHandler.Delete)
	campaigns.Put("/:id/status", middleware.AdminOnly(), campaignHandler.Moderate)
	campaigns.Patch("/:id/status", middleware.AdminOnly(), campaignHandler.Moderate)
	campaigns.Get("/:id/recipients", campaignHandler.Recipients)
	campaigns.Post("/:id/launch", campaignHandler.Launch)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	protected.Get("/notifications", notificationHandler.History)
	protected.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.Put("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Put("/notifications/:campaignId/read", notificationHandler.MarkRead)
	protected.Patch("/notifications/:campaignId/read", notificationHandler.MarkRead)

	// WebSocket route for in-app notification push
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", func(c *fiber.Ctx) error {
		token := c.Query("token")
		user, err := authService.ValidateToken(c.Context(), token)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("user_id", user.ID)
		return websocket.New(func(conn *websocket.Conn) {
			userID, _ := conn.Locals("user_id").(string)
			telemetry.WebSocketClients.Inc()
			defer telemetry.WebSocketClients.Dec()
			wsHub.AddClient(conn, userID)
		})(c)
	})

	// 13. Start Background Event Logger
	if messageQueue != nil {
		go subscribeCampaignEvents(messageQueue, logger)
	}

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// newMessageQueue builds the configured queue backend, or nil when event
// publishing is disabled.
func newMessageQueue(cfg config.QueueConfig, logger *zap.Logger) queue.MessageQueue {
	switch cfg.Driver {
	case "nats":
		mq, err := queue.NewNATSQueue(cfg.URL, logger)
		if err != nil {
			logger.Warn("NATS unavailable, campaign events disabled", zap.Error(err))
			return nil
		}
		return mq
	case "rabbitmq":
		mq, err := queue.NewRabbitMQQueue(cfg.URL, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, campaign events disabled", zap.Error(err))
			return nil
		}
		return mq
	case "":
		return nil
	default:
		logger.Warn("Unknown queue driver, campaign events disabled", zap.String("driver", cfg.Driver))
		return nil
	}
}

// applyVaultSecrets overrides sensitive config values from Vault when it is
// reachable. Missing secrets fall back to the file/env values.
func applyVaultSecrets(cfg *config.Config, logger *zap.Logger) {
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
	if err != nil {
		logger.Warn("Vault unavailable, using config secrets", zap.Error(err))
		return
	}

	if url, err := sm.GetDatabaseURL(); err == nil && url != "" {
		cfg.Database.URL = url
	}
	if secret, err := sm.GetJWTSecret(); err == nil && secret != "" {
		cfg.JWT.Secret = secret
	}
	if key, err := sm.GetSendGridAPIKey(); err == nil && key != "" {
		cfg.Mail.SendGridAPIKey = key
	}
	if sid, token, err := sm.GetTwilioCredentials(); err == nil && sid != "" {
		cfg.SMS.AccountSID = sid
		cfg.SMS.AuthToken = token
	}

	logger.Info("Vault secrets applied")
}

// subscribeCampaignEvents logs campaign lifecycle events published on the
// queue. Downstream consumers (CRM sync, reporting) attach to the same
// subjects.
func subscribeCampaignEvents(mq queue.MessageQueue, logger *zap.Logger) {
	subjects := []string{queue.SubjectCampaignLaunched, queue.SubjectCampaignModerated}
	for _, subject := range subjects {
		subject := subject
		if err := mq.Subscribe(subject, func(msg []byte) error {
			logger.Info("Campaign event", zap.String("subject", subject), zap.ByteString("payload", msg))
			return nil
		}); err != nil {
			logger.Warn("Failed to subscribe to campaign events", zap.String("subject", subject), zap.Error(err))
		}
	}
}
