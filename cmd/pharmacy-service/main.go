package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/api/handlers"
	apimiddleware "github.com/TwumasiAugustine/pharm-manager-sub005/internal/api/middleware"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/config"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/infrastructure/leader"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/infrastructure/mysql"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/infrastructure/redis"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/infrastructure/websocket"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting pharmacy service")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Initialize MySQL
	db := utils.InitializeMysql(cfg, log, ctx)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close MySQL connection", "error", err)
		}
	}()
	log.Info("Connected to MySQL")

	// Initialize repositories
	drugRepo := mysql.NewMySQLDrugRepository(db)
	saleRepo := mysql.NewMySQLSaleRepository(db)
	notificationRepo := mysql.NewMySQLNotificationRepository(db)
	maintenanceRepo := mysql.NewMySQLMaintenanceRepository(db)
	pharmacyRepo := mysql.NewMySQLPharmacyRepository(db)

	// Initialize Redis based components
	eventPublisher := redis.NewRedisEventPublisher(rdb)
	eventSubscriber := redis.NewRedisEventSubscriber(rdb, log)
	statsCache := redis.NewRedisCleanupStatsCache(rdb)

	// Initialize leader election
	leaderElection := leader.NewRedisLeaderElection(rdb, cfg.Leader.TTL)

	// Initialize websocket hub and broadcaster
	connManager := websocket.NewConnectionManager(log)
	statusBroadcaster := websocket.NewStatusBroadcaster(connManager)
	wsHandler := websocket.NewWebSocketHandler(connManager, log)

	// Initialize domain services
	expiryService := services.NewExpiryService(drugRepo, notificationRepo, log)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, log)
	expiredSaleService := services.NewExpiredSaleService(saleRepo, drugRepo, statsCache, eventPublisher, log)
	inventoryService := services.NewInventoryService(drugRepo, notificationRepo, cfg.Jobs.LowStockThreshold, log)
	saleService := services.NewSaleService(saleRepo, drugRepo, log)
	reportService := services.NewReportService(saleRepo, notificationRepo, log)

	// Initialize job runner and registry
	jobRunner := services.NewJobRunner(eventPublisher, log)
	if err := services.RegisterMaintenanceJobs(jobRunner, expiryService, maintenanceService,
		expiredSaleService, inventoryService, reportService, &cfg.Jobs); err != nil {
		log.Error("Failed to register jobs", "error", err)
		os.Exit(1)
	}

	// Initialize scheduler
	scheduler := services.NewCronJobScheduler(jobRunner, leaderElection, cfg.Instance.ID, log)

	// Initialize status event listener (Redis channel -> local websocket hub)
	eventListener := services.NewStatusEventListener(statusBroadcaster, log)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","id":"${id}","remote_ip":"${remote_ip}","host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}","status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}","bytes_in":${bytes_in},"bytes_out":${bytes_out}}` + "\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET, echo.HEAD, echo.PUT, echo.PATCH,
			echo.POST, echo.DELETE, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Initialize handlers
	cronHandler := handlers.NewCronHandler(jobRunner, log)
	expiredSaleHandler := handlers.NewExpiredSaleHandler(expiredSaleService, jobRunner, log)
	drugHandler := handlers.NewDrugHandler(inventoryService, expiryService, log)
	saleHandler := handlers.NewSaleHandler(saleService, log)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyRepo, inventoryService, log)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, log)

	// Maintenance surfaces require the administrative token
	adminOnly := apimiddleware.AdminOnly(cfg.Admin.Token)
	cronHandler.Register(e.Group("/cron", adminOnly))
	expiredSaleHandler.Register(e.Group("/expired-sales", adminOnly))

	// API routes
	api := e.Group("/api/v1")
	drugHandler.Register(api)
	saleHandler.Register(api)
	pharmacyHandler.Register(api)
	notificationHandler.Register(api)

	// Live status channel
	e.GET("/ws/status", func(c echo.Context) error {
		wsHandler.HandleConnection(c.Response(), c.Request())
		return nil
	})

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "pharmacy-service",
			"timestamp": time.Now().Format(time.RFC3339),
			"port":      cfg.Server.Port,
		})
	})

	// Start background services
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()

	if err := scheduler.Start(schedulerCtx); err != nil {
		log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := eventListener.Start(schedulerCtx, eventSubscriber); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Event listener stopped", "error", err)
		}
	}()

	// Try to become leader
	go func() {
		for {
			became, err := leaderElection.BecomeLeader(context.Background(), cfg.Instance.ID)
			if err != nil {
				log.Error("Failed to attempt leadership", "error", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if became {
				log.Info("Became scheduler leader", "instance_id", cfg.Instance.ID)
			}
			time.Sleep(10 * time.Second)
		}
	}()

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting pharmacy server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down pharmacy service...")

	// Graceful shutdown
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schedulerCancel()
	if err := scheduler.Stop(); err != nil {
		log.Error("Failed to stop scheduler", "error", err)
	}
	if err := leaderElection.ReleaseLeadership(ctx, cfg.Instance.ID); err != nil {
		log.Error("Failed to release leadership", "error", err)
	}
	if err := connManager.CloseAll(); err != nil {
		log.Error("Failed to close websocket connections", "error", err)
	}

	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Pharmacy service stopped")
}
