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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-enrollment-intake/api/swagger"
	"github.com/noah-isme/sma-enrollment-intake/internal/handler"
	"github.com/noah-isme/sma-enrollment-intake/internal/middleware"
	"github.com/noah-isme/sma-enrollment-intake/internal/repository"
	"github.com/noah-isme/sma-enrollment-intake/internal/service"
	"github.com/noah-isme/sma-enrollment-intake/pkg/cache"
	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
	"github.com/noah-isme/sma-enrollment-intake/pkg/database"
	"github.com/noah-isme/sma-enrollment-intake/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-enrollment-intake/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-enrollment-intake/pkg/middleware/requestid"
)

// @title Enrollment Intake API
// @version 1.0.0
// @description Public enrollment form intake with guardian email confirmations
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	defer logger.Flush(2 * time.Second)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	metrics := service.NewMetricsService()

	var cacheBackend service.CacheRepository
	if cacheRepo := newCacheRepository(ctx, cfg, logr); cacheRepo != nil {
		defer cacheRepo.Close() //nolint:errcheck
		cacheBackend = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheBackend, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	composer, err := service.NewConfirmationComposer(cfg.School, cfg.Mail.AdminContact)
	if err != nil {
		logr.Fatal("failed to load confirmation template", zap.Error(err))
	}

	// A nil *NotificationService must not leak into the interfaces below.
	var (
		notifier service.Notifier
		prober   *service.NotificationService
	)
	if svc, err := service.NewNotifierFromConfig(ctx, cfg.Mail, cfg.School, metrics, logr); err != nil {
		logr.Warn("email notifications disabled", zap.Error(err))
	} else {
		notifier, prober = svc, svc
		logr.Info("email notifications enabled", zap.String("username", svc.Username()))
	}

	enrollmentRepo := repository.NewEnrollmentRepository(db, metrics)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, notifier, composer, cacheSvc, validator.New(), metrics, logr, cfg.School.Location())
	exportSvc := service.NewExportService(enrollmentSvc, cfg.School.Name, logr, nil, nil)

	formHandler, err := handler.NewFormHandler(cfg.School)
	if err != nil {
		logr.Fatal("failed to load form template", zap.Error(err))
	}
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, exportSvc)
	healthHandler := newHealthHandler(enrollmentSvc, prober)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.ErrorReporter(logr))
	r.Use(middleware.Recovery(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/", formHandler.Index)
	r.GET("/test_db", healthHandler.TestDB)
	r.GET("/test_email", healthHandler.TestEmail)
	r.POST("/enviar_inscripcion", enrollmentHandler.Submit)
	r.GET("/consultar_inscripciones", enrollmentHandler.List)
	r.GET("/consultar_inscripciones/export", enrollmentHandler.Export)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCacheRepository connects to Redis when caching is enabled. A failed
// connection disables the cache instead of aborting startup.
func newCacheRepository(ctx context.Context, cfg *config.Config, logr *zap.Logger) *repository.CacheRepository {
	if !cfg.Cache.Enabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, list cache disabled", zap.Error(err))
		return nil
	}
	return repository.NewCacheRepository(client)
}

func newHealthHandler(db *service.EnrollmentService, prober *service.NotificationService) *handler.HealthHandler {
	if prober == nil {
		return handler.NewHealthHandler(db, nil)
	}
	return handler.NewHealthHandler(db, prober)
}
