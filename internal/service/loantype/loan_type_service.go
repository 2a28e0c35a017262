package loantype

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/service/interfaces"
)

// LoanTypeService is the catalog of loan products. Types are deactivated,
// never deleted: existing loans keep referencing them.
type LoanTypeService struct {
	repo  interfaces.LoanTypeRepositoryInterface
	cache interfaces.RedisStoreOperations
	now   func() time.Time
}

func NewLoanTypeService(
	repo interfaces.LoanTypeRepositoryInterface,
	cache interfaces.RedisStoreOperations,
	now func() time.Time,
) *LoanTypeService {
	if now == nil {
		now = time.Now
	}
	return &LoanTypeService{repo: repo, cache: cache, now: now}
}

func (s *LoanTypeService) Create(
	ctx context.Context,
	code, name string,
	interestRate, maxAmount float64,
) (*storemodels.LoanType, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	if code == "" || name == "" || interestRate <= 0 || maxAmount <= 0 {
		return nil, models.NewValidationError(consts.MsgLoanTypeInvalidFields)
	}

	if _, err := s.repo.GetLoanTypeByCode(ctx, code); err == nil {
		return nil, models.NewValidationError(consts.MsgLoanTypeDuplicateCode)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	loanType := storemodels.LoanType{
		Code:         code,
		Name:         name,
		InterestRate: interestRate,
		MaxAmount:    maxAmount,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}

	id, err := s.repo.CreateLoanType(context.WithoutCancel(ctx), loanType)
	if err != nil {
		// The unique index catches a concurrent create that slipped past the
		// lookup above.
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewValidationError(consts.MsgLoanTypeDuplicateCode)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	loanType.ID = id

	s.invalidateCatalog(ctx)
	return &loanType, nil
}

// Deactivate blocks new loan creation against the type. It never cascades
// to loans already referencing it.
func (s *LoanTypeService) Deactivate(ctx context.Context, id primitive.ObjectID) (*storemodels.LoanType, error) {
	loanType, err := s.repo.DeactivateLoanType(context.WithoutCancel(ctx), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Guard miss: absent, or already inactive.
			existing, lookupErr := s.repo.GetLoanTypeByID(ctx, id)
			if lookupErr != nil {
				return nil, models.NewNotFoundError(consts.MsgLoanTypeNotFound)
			}
			if !existing.Active {
				return nil, models.NewConflictError(consts.MsgLoanTypeAlreadyOff)
			}
			return nil, models.NewServerError(consts.MsgUnexpected)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	s.invalidateCatalog(ctx)
	return loanType, nil
}

func (s *LoanTypeService) GetByID(ctx context.Context, id primitive.ObjectID) (*storemodels.LoanType, error) {
	loanType, err := s.repo.GetLoanTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgLoanTypeNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return loanType, nil
}

// List serves the full catalog from the read-through cache; the activeOnly
// view filters in memory so both views share one cached entry.
func (s *LoanTypeService) List(ctx context.Context, activeOnly bool) ([]storemodels.LoanType, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLoanTypeCatalog(ctx, consts.LoanTypeCatalogKey)
		if err != nil {
			logger.CtxWarn(ctx, "Loan type catalog cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return filterActive(cached, activeOnly), nil
		}
	}

	loanTypes, err := s.repo.ListLoanTypes(ctx, false)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	if s.cache != nil {
		if err := s.cache.SaveLoanTypeCatalog(ctx, consts.LoanTypeCatalogKey, loanTypes); err != nil {
			logger.CtxWarn(ctx, "Loan type catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return filterActive(loanTypes, activeOnly), nil
}

func (s *LoanTypeService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, consts.LoanTypeCatalogKey); err != nil {
		logger.CtxWarn(ctx, "Loan type catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}

func filterActive(loanTypes []storemodels.LoanType, activeOnly bool) []storemodels.LoanType {
	if !activeOnly {
		return loanTypes
	}
	filtered := make([]storemodels.LoanType, 0, len(loanTypes))
	for _, lt := range loanTypes {
		if lt.Active {
			filtered = append(filtered, lt)
		}
	}
	return filtered
}
