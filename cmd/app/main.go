package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/commune-hq/community-server-go/internal/bootstrap"
	"github.com/commune-hq/community-server-go/internal/features/forum"
	"github.com/commune-hq/community-server-go/internal/http/routes"
	appjobs "github.com/commune-hq/community-server-go/internal/jobs"
	"github.com/commune-hq/community-server-go/pkg/cache"
	"github.com/commune-hq/community-server-go/pkg/config"
	"github.com/commune-hq/community-server-go/pkg/database"
	"github.com/commune-hq/community-server-go/pkg/jobs"
	"github.com/commune-hq/community-server-go/pkg/logger"
	"github.com/commune-hq/community-server-go/pkg/metrics"
	"github.com/commune-hq/community-server-go/pkg/middleware"
	"github.com/commune-hq/community-server-go/pkg/request"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectWithRetry(ctx, cfg.Database, appLogger, 5, time.Second)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("database close failed", slog.String("error", err.Error()))
		}
	}()

	if cfg.Database.RunMigrations {
		if err := bootstrap.ApplyDatabaseMigrations(db, appLogger); err != nil {
			appLogger.Error("migrations failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		appLogger.Error("redis connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	if redisClient.Enabled() {
		appLogger.Info("redis cache enabled", slog.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Info("redis cache disabled, using in-process cache only")
	}

	engagement := forum.NewEngagementService(db, redisClient, cfg.RankingCacheTTL, appLogger)
	defer engagement.Close()

	scheduler := jobs.NewScheduler(appLogger)
	scheduler.AddJob(appjobs.NewRankingWarmJob(engagement), cfg.RankingCacheTTL)
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.New()

	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(2 * 1024 * 1024)) // 2MB limit
	router.Use(metrics.Middleware())
	router.Use(request.Handler(appLogger))

	// Rate limiting (100 requests per minute per IP)
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	defer rateLimiter.Stop()
	router.Use(rateLimiter.Middleware())

	routes.Register(router, cfg, db, appLogger, engagement)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	appLogger.Info("server started successfully")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
