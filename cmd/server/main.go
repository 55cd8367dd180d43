package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hope4ever-backend/internal/config"
	"hope4ever-backend/internal/database"
	"hope4ever-backend/internal/middleware"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/internal/repository/memory"
	"hope4ever-backend/internal/router"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/logger"
	"hope4ever-backend/pkg/mq"
	"hope4ever-backend/pkg/redis"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logger
	zlog, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog.Info("Configuration loaded", zap.String("env", cfg.App.Env), zap.String("store", cfg.Store.Driver))

	utils.RegisterValidators()

	// 3. Initialize store
	var (
		repos *repository.Repositories
		db    *gorm.DB
	)
	switch cfg.Store.Driver {
	case "memory":
		zlog.Warn("Using in-memory store; data is lost on exit")
		repos = memory.NewStore().Repositories()
	default:
		if cfg.Database.AutoMigrate {
			if err := database.RunMigrations(cfg.Database, zlog); err != nil {
				zlog.Fatal("Failed to run migrations", zap.Error(err))
			}
		}
		db, err = database.Connect(cfg, zlog)
		if err != nil {
			zlog.Fatal("Failed to connect to database", zap.Error(err))
		}
		repos = repository.NewRepositories(db)
	}

	// 4. Optional collaborators
	var limiter middleware.RateLimiter
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, zlog)
		if err != nil {
			zlog.Warn("Redis unavailable, login rate limiting disabled", zap.Error(err))
		} else {
			limiter = rdb
		}
	}

	var events service.EventPublisher = service.NopPublisher{}
	var publisher *mq.Publisher
	if cfg.AMQP.URL != "" {
		publisher, err = mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			zlog.Warn("AMQP unavailable, domain events disabled", zap.Error(err))
		} else {
			events = publisher
			zlog.Info("Publishing domain events", zap.String("exchange", cfg.AMQP.Exchange))
		}
	}

	// 5. Initialize token manager and password hasher
	tokens, err := utils.NewTokenManager(utils.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.AccessTTL,
		Leeway:    cfg.JWT.Leeway,
	})
	if err != nil {
		zlog.Fatal("Failed to initialize token manager", zap.Error(err))
	}
	hasher := utils.NewPasswordHasherWithCost(cfg.Auth.PasswordCost)

	// 6. Initialize services
	svc := service.NewService(cfg, repos, hasher, tokens, events, zlog)

	// 7. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Worker.Start(ctx)

	// 8. Setup router
	gin.SetMode(cfg.Server.GinMode)
	r := router.New(cfg, svc, router.Options{Limiter: limiter}, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. Setup graceful shutdown
	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("prefix", cfg.Server.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	// 10. Release resources
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			zlog.Warn("Failed to close AMQP publisher", zap.Error(err))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zlog.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			zlog.Warn("Failed to close database", zap.Error(err))
		}
	}

	zlog.Info("Server exited")
}
