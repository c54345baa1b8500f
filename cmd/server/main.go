package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	httpadapter "github.com/brumerie/marketplace-service/internal/adapter/http"
	"github.com/brumerie/marketplace-service/internal/adapter/messaging/nats"
	"github.com/brumerie/marketplace-service/internal/adapter/repository/cache"
	"github.com/brumerie/marketplace-service/internal/adapter/repository/mongodb"
	"github.com/brumerie/marketplace-service/internal/adapter/storage/s3"
	"github.com/brumerie/marketplace-service/internal/config"
	"github.com/brumerie/marketplace-service/internal/mailer"
	"github.com/brumerie/marketplace-service/internal/marketplace/usecase"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
	"github.com/brumerie/marketplace-service/internal/platform/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.NewZapLogger(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		appLogger.Fatal("failed to initialize tracer", "error", err.Error())
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("failed to shut down tracer provider", "error", err.Error())
		}
	}()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("failed to connect to MongoDB", "uri", cfg.MongoURI, "error", err.Error())
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	listingRepo := mongodb.NewListingRepository(db)
	userRepo := mongodb.NewUserRepository(db, appLogger)

	storageClient, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize storage", "error", err.Error())
	}

	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Fatal("failed to initialize NATS", "url", cfg.NATSURL, "error", err.Error())
	}
	defer natsPublisher.Close()

	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		appLogger.Warn("listing cache unavailable, serving without it", "address", cfg.RedisAddress, "error", err.Error())
		listingCache = nil
	}

	quotaUC := usecase.NewQuotaUsecase(userRepo, appLogger)
	listingUC := usecase.NewListingUsecase(listingRepo, userRepo, quotaUC, storageClient, natsPublisher, mailer.SMTPMailer{}, appLogger)
	engagementUC := usecase.NewEngagementUsecase(listingRepo, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, storageClient, appLogger)

	handler := httpadapter.NewHandler(listingUC, quotaUC, engagementUC, userUC, listingCache, appLogger)
	router := httpadapter.NewRouter(handler, cfg.JWTSecret, appLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting HTTP server", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err.Error())
	}
}
