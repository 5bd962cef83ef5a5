// @title           Blog Service API
// @version         1.0
// @description     블로그 게시글, 댓글, 좋아요 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@blog.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	_ "blog-engagement-api/docs" // Swagger docs import

	"blog-engagement-api/internal/cache"
	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/config"
	"blog-engagement-api/internal/database"
	"blog-engagement-api/internal/job"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/realtime"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/router"
	"blog-engagement-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Blog Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database
	dsn := cfg.Database.GetDSN()
	if cfg.Database.Driver == database.DriverSQLite {
		dsn = cfg.Database.URL
	}
	db, err := database.NewWithRetry(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, 5, 5*time.Second, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(stopDBStats)

	// Redis backs view deduplication and the cross-instance live feed
	var redisClient *redis.Client
	var viewTracker cache.ViewTracker
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, counting every view and keeping live feed local", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			viewTracker = cache.NewRedisViewTracker(redisClient, cfg.Redis.ViewWindow)
		}
	}

	// Bootstrap admin
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	if cfg.Admin.Password != "" {
		seeder := service.NewUserService(userRepo, postRepo, nil, m, logger)
		if _, err := seeder.SeedAdmin(context.Background(), cfg.Admin); err != nil {
			logger.Warn("Failed to seed admin account", zap.Error(err))
		}
	} else {
		logger.Warn("Admin password not configured, skipping admin bootstrap")
	}

	// Initialize S3 client. A disabled client stays a nil interface.
	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		c, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, media uploads disabled", zap.Error(err))
		} else {
			s3Client = c
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, media uploads disabled")
	}

	// Notification client
	notificationClient := client.NewNoOpNotificationClient()
	if cfg.NotificationAPI.BaseURL != "" {
		notificationClient = client.NewNotificationClient(
			cfg.NotificationAPI.BaseURL,
			cfg.NotificationAPI.APIKey,
			cfg.NotificationAPI.Timeout,
			logger,
			m,
		)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.NotificationAPI.BaseURL))
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	hub := realtime.NewHub(redisClient, m, logger)
	go hub.Run(rootCtx)

	// Background jobs
	reconcileJob := job.NewCounterReconcileJob(postRepo, m, logger)
	scheduler, err := job.Schedule(cfg.Jobs.CounterReconcileSpec, reconcileJob, logger)
	if err != nil {
		logger.Fatal("Failed to schedule counter reconcile job", zap.Error(err))
	}
	scheduler.Start()

	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Redis:              redisClient,
		Logger:             logger,
		JWTSecret:          cfg.JWT.Secret,
		BasePath:           cfg.Server.BasePath,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		Metrics:            m,
		S3Client:           s3Client,
		NotificationClient: notificationClient,
		ViewTracker:        viewTracker,
		Hub:                hub,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Blog Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	<-scheduler.Stop().Done()
	collector.Stop()
	stopBackground()

	logger.Info("Server exited gracefully")
}

// initLogger builds a JSON logger on stdout, teeing into a rotating file when
// a file path is configured
func initLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.AddSync(rotator), level))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if level == zapcore.DebugLevel {
		opts = append(opts, zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}
