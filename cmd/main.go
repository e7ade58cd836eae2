package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sharath018/hotel-association-backend/config"
	"github.com/sharath018/hotel-association-backend/database"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/middleware"
	redisclient "github.com/sharath018/hotel-association-backend/pkg/redis"
	"github.com/sharath018/hotel-association-backend/pkg/storage"
	"github.com/sharath018/hotel-association-backend/routes"
)

// @title Hotel Association Membership API
// @version 1.0
// @description Membership registrations, review workflow, member directory and activity log.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger := newLogger(cfg.IsDevelopment())
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	logger.Info("database migrations completed")

	// Sessions and reset tokens fall back to process memory without Redis.
	var tokens auth.TokenStore
	if cfg.RedisAddr != "" {
		rdb, err := redisclient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		tokens = auth.NewRedisTokenStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory token store")
		tokens = auth.NewMemoryTokenStore()
	}

	var publisher notification.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := notification.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationTopic, logger)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka close", zap.Error(err))
			}
		}()
		publisher = kp
	} else {
		logger.Warn("KAFKA_BROKERS not set, notifications are only logged")
		publisher = notification.NewLogPublisher(logger)
	}

	store, err := newObjectStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage", zap.Error(err))
	}

	profiles := auth.NewRepository(db)
	accounts := auth.NewService(profiles, tokens, publisher, cfg, logger)
	if err := auth.SeedSuperAdmin(ctx, accounts, profiles, cfg.SuperAdminEmail, cfg.SuperAdminPassword, logger); err != nil {
		logger.Fatal("seed super-admin", zap.Error(err))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, routes.Deps{
		DB:        db,
		Tokens:    tokens,
		Publisher: publisher,
		Store:     store,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newObjectStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.ObjectStore, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Bucket:          cfg.S3Bucket,
		}, logger)
	}
	logger.Info("using local upload storage", zap.String("dir", cfg.UploadDir))
	return storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
}

func newLogger(development bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
