// main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/api"
	"github.com/Marga-Ghale/skill-swap/internal/api/handlers"
	"github.com/Marga-Ghale/skill-swap/internal/config"
	"github.com/Marga-Ghale/skill-swap/internal/cron"
	"github.com/Marga-Ghale/skill-swap/internal/db"
	"github.com/Marga-Ghale/skill-swap/internal/email"
	"github.com/Marga-Ghale/skill-swap/internal/logging"
	"github.com/Marga-Ghale/skill-swap/internal/metrics"
	"github.com/Marga-Ghale/skill-swap/internal/notification"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/repository/memory"
	"github.com/Marga-Ghale/skill-swap/internal/seed"
	"github.com/Marga-Ghale/skill-swap/internal/service"
	"github.com/Marga-Ghale/skill-swap/internal/socket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// memoryDatabaseURL switches storage to the in-process store.
const memoryDatabaseURL = "memory"

func main() {
	if err := run(); err != nil {
		slog.Error("server_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// ============================================
	// Load environment variables and configuration
	// ============================================
	envErr := godotenv.Load()

	cfg := config.Load()
	logger, err := logging.NewLogger(logging.DefaultConfig(cfg.LogLevel, cfg.LogDir))
	if err != nil {
		return err
	}
	if envErr != nil {
		logger.Info("env_file_missing", slog.String("hint", "using process environment"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================
	// Storage
	// ============================================
	repos, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var cache service.MemberCache
	redisStatus := "disabled"
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis_unavailable", slog.Any("error", err))
		} else {
			defer redisDB.Close()
			cache = redisDB
			redisStatus = "connected"
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub(logger)
	go hub.Run(ctx)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)

	// ============================================
	// Initialize Notification Service
	// ============================================
	notificationSvc := notification.NewService(repos.NotificationRepo, repos.UserRepo, cfg.FrontendURL, logger)
	notificationSvc.SetBroadcaster(socket.NewBroadcaster(hub))

	emailStatus := "disabled"
	if cfg.SMTPHost != "" {
		emailSvc := email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		}, logger)
		queue := email.NewQueue(emailSvc, 2, logger)
		defer queue.Stop()
		notificationSvc.SetMailer(queue)
		emailStatus = "configured"
	} else {
		logger.Info("email_disabled", slog.String("hint", "SMTP_HOST not set"))
	}

	// ============================================
	// Metrics (optional)
	// ============================================
	var (
		recorder        service.SwapRecorder
		instrumentation api.Instrumentation
	)
	if cfg.MetricsEnabled {
		m := metrics.New(hub.GetConnectedClientsCount)
		recorder = m
		instrumentation = m
	}

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		Cache:    cache,
		Events:   notificationSvc,
		Recorder: recorder,
	})

	// ============================================
	// Seed Data (for development)
	// ============================================
	if !cfg.IsProduction() {
		if err := seed.SeedData(ctx, repos, logger); err != nil {
			logger.Warn("seed_failed", slog.Any("error", err))
		}
	}

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	scheduler := cron.NewScheduler(repos, notificationSvc, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	router := api.NewRouter(api.RouterDeps{
		Handlers:  handlers.NewHandlers(services),
		Auth:      services.Auth,
		WebSocket: wsHandler.HandleWebSocket,
		Metrics:   instrumentation,
		Health: func() gin.H {
			return gin.H{
				"cache":      redisStatus,
				"email":      emailStatus,
				"websocket":  "active",
				"ws_clients": hub.GetConnectedClientsCount(),
			}
		},
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		LoginPerMinute: cfg.LoginRatePerMinute,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_starting", slog.String("port", cfg.Port), slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server_exited")
	return nil
}

// openStorage runs migrations and connects to Postgres, or builds the
// in-memory store when DATABASE_URL is "memory".
func openStorage(cfg *config.Config, logger *slog.Logger) (*repository.Repositories, func(), error) {
	if cfg.DatabaseURL == memoryDatabaseURL {
		logger.Warn("memory_storage", slog.String("hint", "data is lost on restart"))
		return memory.NewStore().Repositories(), func() {}, nil
	}

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, nil, err
	}

	pg, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRepositories(pg.Pool, pg.SQL), pg.Close, nil
}
