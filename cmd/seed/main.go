// Command seed resets the listings collection and inserts sample data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/config"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/seed"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/usecase"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	owner := flag.String("owner", "wanderer", "Username that will own the sample listings")
	ownerEmail := flag.String("email", "wanderer@example.com", "Email used if the owner has to be created")
	ownerPassword := flag.String("password", "wanderlust", "Password used if the owner has to be created")
	clean := flag.Bool("clean", true, "Delete existing listings and their reviews first")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() {
		_ = appLogger.Sync()
	}()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err := client.Ping(ctx, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	db := client.Database(cfg.MongoDatabase)
	listings, err := mongodb.NewListingRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init listing repository", zap.Error(err))
	}
	reviews, err := mongodb.NewReviewRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init review repository", zap.Error(err))
	}
	users, err := mongodb.NewUserRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init user repository", zap.Error(err))
	}

	s := seed.NewSeeder(listings, reviews, users, usecase.NewUserUsecase(users, appLogger), appLogger)

	u, err := s.Owner(ctx, *owner, *ownerEmail, *ownerPassword)
	if err != nil {
		appLogger.Fatal("Failed to resolve owner", zap.Error(err))
	}
	if *clean {
		n, err := s.Clear(ctx)
		if err != nil {
			appLogger.Fatal("Cleanup failed", zap.Error(err))
		}
		appLogger.Info("Existing listings removed", zap.Int("count", n))
	}
	if _, err := s.Listings(ctx, u.ID); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	appLogger.Info("Data was initialized", zap.String("owner", u.Username))
}
