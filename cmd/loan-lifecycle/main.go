package main

import (
	"context"
	"fmt"
	"log"

	"mutual/loanlifecycle/internal/app/router"
	"mutual/loanlifecycle/internal/pkg/cleanup"
	config "mutual/loanlifecycle/internal/pkg/config"
	mongodb "mutual/loanlifecycle/internal/pkg/db/mongo"
	redisdb "mutual/loanlifecycle/internal/pkg/db/redis"
	"mutual/loanlifecycle/internal/pkg/gcs"
	"mutual/loanlifecycle/internal/pkg/logger"
	collectionmethods "mutual/loanlifecycle/internal/pkg/store/impl/collection_methods"
	loantypes "mutual/loanlifecycle/internal/pkg/store/impl/loan_types"
)

func main() {

	ctx := context.Background()

	logger.Init()

	cfg, err := config.LoadFromConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.ConnectToMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := loantypes.EnsureIndexes(ctx, mongoClient); err != nil {
		log.Fatalf("Failed to ensure loan type indexes: %v", err)
	}
	if err := collectionmethods.EnsureIndexes(ctx, mongoClient); err != nil {
		log.Fatalf("Failed to ensure collection method indexes: %v", err)
	}

	// Connect to Redis
	redisClient, err := redisdb.ConnectToRedis(ctx, cfg.Redis, nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// GCS client for overdue report exports
	gcsClient, err := gcs.NewGCSClient(ctx, cfg.Report.BucketName)
	if err != nil {
		log.Fatalf("Failed to create GCS client: %v", err)
	}

	defer cleanup.CleanupResources(ctx, mongoClient, redisClient, gcsClient)

	server := router.SetupRouter(cfg, mongoClient, redisClient.Client, gcsClient)
	port := cfg.Server.Port

	if err := server.Run(":" + fmt.Sprintf("%d", port)); err != nil {
		logger.CtxError(ctx, "Failed to start server", err)
	}
}
