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

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/cache/redis"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/repository/memory"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/config"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/handler"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/router"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/session"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/usecase"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// stores bundles the persistence backends picked by STORE_DRIVER.
type stores struct {
	listings domain.ListingRepository
	reviews  domain.ReviewRepository
	users    domain.UserRepository
	sessions domain.SessionRepository
	tx       domain.TxManager
	health   handler.HealthChecker
	close    func(ctx context.Context)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	// 1. Logger
	appLogger := logger.NewLogger()
	defer func() {
		_ = appLogger.Sync()
	}()
	appLogger.Info("Application starting...")

	// 2. Config
	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load config", zap.Error(err))
	}

	// 3. Tracing
	tp := tracer.InitTracer(tracer.Options{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTExporterOTLPEndpoint,
		SampleRatio: cfg.OTelSampleRatio,
	}, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager("wanderlust")

	// 4. Persistence
	st, err := openStores(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st.close(ctx)
	}()

	// 5. Image storage
	initCtx, initCancel := context.WithTimeout(context.Background(), 15*time.Second)
	images, err := s3.NewImageStorage(initCtx, s3.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		Folder:    cfg.ImageFolder,
	}, appLogger)
	if err != nil {
		initCancel()
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	var (
		listingOpts []usecase.ListingOption
		reviewOpts  []usecase.ReviewOption
	)

	// 6. Optional cache, events, mail
	if cfg.RedisAddress != "" {
		cache, err := redis.NewListingCache(initCtx, cfg.RedisAddress, cfg.CacheTTL)
		if err != nil {
			appLogger.Warn("Redis unavailable, listing cache disabled", zap.String("address", cfg.RedisAddress), zap.Error(err))
		} else {
			defer cache.Close()
			listingOpts = append(listingOpts, usecase.WithListingCache(cache))
			reviewOpts = append(reviewOpts, usecase.WithReviewCache(cache))
			appLogger.Info("Listing cache enabled", zap.String("address", cfg.RedisAddress))
		}
	}
	initCancel()

	if cfg.NATSURL != "" {
		publisher, err := nats.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, domain events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			listingOpts = append(listingOpts, usecase.WithListingEvents(publisher))
			reviewOpts = append(reviewOpts, usecase.WithReviewEvents(publisher))
		}
	}

	if cfg.SMTPEnabled() {
		mailer := email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, appLogger)
		listingOpts = append(listingOpts, usecase.WithMailer(mailer))
	}

	// 7. Usecases
	userUC := usecase.NewUserUsecase(st.users, appLogger)
	listingUC := usecase.NewListingUsecase(st.listings, st.reviews, st.users, st.tx, images, appLogger, listingOpts...)
	reviewUC := usecase.NewReviewUsecase(st.listings, st.reviews, st.tx, appLogger, reviewOpts...)

	// 8. HTTP layer
	sessions := session.NewManager(st.sessions, session.Options{
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL,
		TouchAfter: cfg.SessionTouchAfter,
		Secure:     cfg.CookieSecure,
	}, appLogger)

	limiter := middleware.NewLimiterStore(cfg.LoginRatePerMinute, cfg.LoginBurst, time.Minute)
	defer limiter.Stop()

	h, err := handler.New(handler.Options{
		Listings:  listingUC,
		Reviews:   reviewUC,
		Users:     userUC,
		Metrics:   metricsManager,
		Health:    st.health,
		MaxUpload: cfg.MaxUploadBytes(),
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize handlers", zap.Error(err))
	}

	mux := router.New(router.Deps{
		Handler:  h,
		Sessions: sessions,
		Users:    userUC,
		Listings: listingUC,
		Reviews:  reviewUC,
		Limiter:  limiter,
		Metrics:  metricsManager,
		Logger:   appLogger,

		TrustProxy: cfg.TrustProxy,
	})

	// 9. HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	go func() {
		appLogger.Info("HTTP server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. Prometheus
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Shutting down server...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited")
}

func openStores(cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("Using in-memory store, data is lost on restart")
		mem := memory.NewStore()
		return &stores{
			listings: mem.Listings(),
			reviews:  mem.Reviews(),
			users:    mem.Users(),
			sessions: mem.Sessions(),
			tx:       mem,
			health:   func(context.Context) error { return nil },
			close:    func(context.Context) {},
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	log.Info("Successfully connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := client.Database(cfg.MongoDatabase)
	listings, err := mongodb.NewListingRepository(db, log)
	if err != nil {
		return nil, err
	}
	reviews, err := mongodb.NewReviewRepository(db, log)
	if err != nil {
		return nil, err
	}
	users, err := mongodb.NewUserRepository(db, log)
	if err != nil {
		return nil, err
	}
	sessions, err := mongodb.NewSessionRepository(db, log)
	if err != nil {
		return nil, err
	}

	return &stores{
		listings: listings,
		reviews:  reviews,
		users:    users,
		sessions: sessions,
		tx:       mongodb.NewTxManager(client, cfg.MongoTransactions, log),
		health: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error("Error disconnecting from MongoDB", zap.Error(err))
			} else {
				log.Info("Disconnected from MongoDB")
			}
		},
	}, nil
}
