package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
)

// RedisStoreAdapter is the read-through catalog cache. MongoDB stays the
// system of record; cached catalogs are deleted on every write.
type RedisStoreAdapter struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisStoreAdapter(client *redis.Client, catalogTTL time.Duration) *RedisStoreAdapter {
	return &RedisStoreAdapter{client: client, catalogTTL: catalogTTL}
}

func (a *RedisStoreAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisStoreAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return a.client.Get(ctx, key).Bytes()
}

func (a *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisStoreAdapter) Exists(ctx context.Context, key string) (bool, error) {
	val, err := a.client.Exists(ctx, key).Result()
	return val > 0, err
}

// GetLoanTypeCatalog returns the cached loan type catalog, or (nil, nil) on
// a cache miss.
func (a *RedisStoreAdapter) GetLoanTypeCatalog(ctx context.Context, key string) ([]storemodels.LoanType, error) {
	data, err := a.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var catalog []storemodels.LoanType
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan type catalog: %w", err)
	}
	return catalog, nil
}

func (a *RedisStoreAdapter) SaveLoanTypeCatalog(ctx context.Context, key string, catalog []storemodels.LoanType) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal loan type catalog: %w", err)
	}
	return a.Set(ctx, key, data, a.catalogTTL)
}

// GetCollectionMethodCatalog returns the cached collection method catalog,
// or (nil, nil) on a cache miss.
func (a *RedisStoreAdapter) GetCollectionMethodCatalog(
	ctx context.Context,
	key string,
) ([]storemodels.CollectionMethod, error) {
	data, err := a.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var catalog []storemodels.CollectionMethod
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection method catalog: %w", err)
	}
	return catalog, nil
}

func (a *RedisStoreAdapter) SaveCollectionMethodCatalog(
	ctx context.Context,
	key string,
	catalog []storemodels.CollectionMethod,
) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal collection method catalog: %w", err)
	}
	return a.Set(ctx, key, data, a.catalogTTL)
}
