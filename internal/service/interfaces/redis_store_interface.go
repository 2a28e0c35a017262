package interfaces

import (
	"context"
	"time"

	"mutual/loanlifecycle/internal/pkg/store/models"
)

type RedisStoreOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetLoanTypeCatalog(ctx context.Context, key string) ([]models.LoanType, error)
	SaveLoanTypeCatalog(ctx context.Context, key string, catalog []models.LoanType) error
	GetCollectionMethodCatalog(ctx context.Context, key string) ([]models.CollectionMethod, error)
	SaveCollectionMethodCatalog(ctx context.Context, key string, catalog []models.CollectionMethod) error
}
