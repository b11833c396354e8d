package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"tableside/internal/caching"
	"tableside/internal/config"
	"tableside/internal/events"
	"tableside/internal/handlers"
	"tableside/internal/jobs/background"
	"tableside/internal/logger"
	"tableside/internal/middleware"
	"tableside/internal/repositories"
	"tableside/internal/services"
	"tableside/pkg/database"
)

const menuImagesBucket = "menu-images"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New("tableside")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer cacheSvc.Close()

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, menuImagesBucket)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucket(ctx); err != nil {
		appLogger.Warn("startup", "minio", fmt.Sprintf("bucket check failed, image uploads may not work: %v", err))
	}

	// Repositories
	orderRepo := repositories.NewOrderRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	menuItemRepo := repositories.NewMenuItemRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)
	adminRepo := repositories.NewAdminUserRepo(pool)
	auditLogsRepo := repositories.NewAuditLogsRepo(pool)

	// Event bus for order lifecycle streaming
	bus := events.NewBus(cfg.SSEQueueSize)

	// Services
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc)
	orderSvc := services.NewOrderService(orderRepo, tableRepo, menuItemRepo, settingsSvc, bus)
	menuSvc := services.NewMenuService(categoryRepo, menuItemRepo, cacheSvc, minioSvc)
	tableSvc := services.NewTableService(tableRepo)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret, 24*time.Hour)
	auditSvc := services.NewAuditLogsService(auditLogsRepo)
	seedSvc := services.NewSeedService(tableRepo, categoryRepo, menuItemRepo, settingsRepo, cacheSvc)

	// Handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	sseHandlers := handlers.NewSSEHandlers(bus, orderSvc, cfg.SSEPingInterval, int(cfg.SSERetry/time.Millisecond))
	menuHandlers := handlers.NewMenuHandlers(menuSvc)
	categoryHandlers := handlers.NewCategoryHandlers(menuSvc)
	menuItemHandlers := handlers.NewMenuItemHandlers(menuSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc, adminRepo)
	auditLogsHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	seedHandlers := handlers.NewSeedHandlers(seedSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, bus)

	// Background jobs
	scheduler := background.NewJobScheduler(orderSvc, auditSvc, bus, cfg.StaleOrderTTL, cfg.StaleSweepInterval, cfg.AuditRetention)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	api := e.Group("/api")
	api.GET("", healthHandlers.Root)

	// Diner-facing routes
	api.POST("/orders", orderHandlers.PlaceOrder)
	api.GET("/orders/:id", orderHandlers.GetOrder)
	api.GET("/sse/orders/:id", sseHandlers.OrderStream)
	api.GET("/menu", menuHandlers.GetMenu)
	api.GET("/menu/all", menuHandlers.GetFullMenu)
	api.GET("/tables", tableHandlers.ListActiveTables)
	api.GET("/tables/:id", tableHandlers.GetActiveTable)
	api.GET("/settings", settingsHandlers.GetSettings)

	// Admin auth plus the admin stream. EventSource cannot send an
	// Authorization header, so the stream stays outside the JWT group.
	api.POST("/admin/login", authHandlers.Login)
	api.POST("/admin/register", authHandlers.Register)
	api.GET("/admin/sse/orders", sseHandlers.AdminStream)

	// Admin routes (JWT required, mutations audited)
	admin := api.Group("/admin")
	admin.Use(middleware.JWTMiddleware(adminRepo, cfg.JWTSecret))
	admin.Use(middleware.AuditMiddleware(auditSvc))

	admin.GET("/me", authHandlers.Me)

	admin.GET("/orders", orderHandlers.ListOrders)
	admin.PATCH("/orders/:id/status", orderHandlers.UpdateOrderStatus)

	admin.POST("/categories", categoryHandlers.CreateCategory)
	admin.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	admin.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	admin.POST("/menu-items", menuItemHandlers.CreateMenuItem)
	admin.PUT("/menu-items/:id", menuItemHandlers.UpdateMenuItem)
	admin.DELETE("/menu-items/:id", menuItemHandlers.DeleteMenuItem)
	admin.POST("/menu-items/:id/image", menuItemHandlers.UploadMenuItemImage)

	admin.GET("/tables", tableHandlers.ListTables)
	admin.POST("/tables", tableHandlers.CreateTable)
	admin.PUT("/tables/:id", tableHandlers.UpdateTable)
	admin.DELETE("/tables/:id", tableHandlers.DeleteTable)

	admin.PUT("/settings", settingsHandlers.UpdateSettings)
	admin.POST("/seed", seedHandlers.Seed)
	admin.GET("/audit-logs", auditLogsHandlers.ListAuditLogs)

	// Start server
	go func() {
		log.Printf("🚀 Tableside server starting on port %d", cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("startup", "http", "server stopped unexpectedly", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutdown", "signal", "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(); err != nil {
		appLogger.Error("shutdown", "scheduler", "failed to stop job scheduler", err)
	}

	// Closing the bus ends every SSE stream so Shutdown does not wait out
	// its timeout on long-lived connections.
	bus.Close()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown", "http", "forced server close", err)
	}

	appLogger.Info("shutdown", "http", "server stopped")
}
