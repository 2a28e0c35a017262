package cleanup

import (
	"context"

	mongodb "mutual/loanlifecycle/internal/pkg/db/mongo"
	redisdb "mutual/loanlifecycle/internal/pkg/db/redis"
	"mutual/loanlifecycle/internal/pkg/gcs"
	"mutual/loanlifecycle/internal/pkg/logger"
)

func CleanupResources(
	ctx context.Context,
	mongoClient *mongodb.MongoClient,
	redisClient *redisdb.RedisClient,
	gcsClient *gcs.GCSClient,
) {
	if mongoClient != nil && mongoClient.Client != nil {
		if err := mongodb.Disconnect(mongoClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from MongoDB", err)
		}
	}
	if redisClient != nil && redisClient.Client != nil {
		if err := redisdb.Disconnect(redisClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from Redis", err)
		}
	}
	if gcsClient != nil {
		gcsClient.Close(ctx)
	}
}
