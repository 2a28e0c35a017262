package collectionmethod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/logger"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
	"mutual/loanlifecycle/internal/pkg/utils"
	"mutual/loanlifecycle/internal/service/interfaces"
)

// CollectionMethodService registers and maintains the catalog of collection
// methods. Registration is all-or-nothing: either every entry of a batch is
// persisted or none survives.
type CollectionMethodService struct {
	repo  interfaces.CollectionMethodRepositoryInterface
	cache interfaces.RedisStoreOperations
	now   func() time.Time
}

func NewCollectionMethodService(
	repo interfaces.CollectionMethodRepositoryInterface,
	cache interfaces.RedisStoreOperations,
	now func() time.Time,
) *CollectionMethodService {
	if now == nil {
		now = time.Now
	}
	return &CollectionMethodService{repo: repo, cache: cache, now: now}
}

// RegisterBatch validates every entry before touching the store. Codes are
// unique case-insensitively, both inside the batch and against what already
// exists. A partial insert failure is compensated by deleting whatever made
// it in.
func (s *CollectionMethodService) RegisterBatch(
	ctx context.Context,
	entries []models.CollectionMethodEntry,
) ([]storemodels.CollectionMethod, error) {
	if len(entries) == 0 {
		return nil, models.NewValidationError(consts.MsgMethodEmptyFields)
	}

	seen := make(map[string]struct{}, len(entries))
	lowerCodes := make([]string, 0, len(entries))
	methods := make([]storemodels.CollectionMethod, 0, len(entries))
	createdAt := s.now().UTC()

	for i, entry := range entries {
		entry.Code = strings.TrimSpace(entry.Code)
		entry.Name = strings.TrimSpace(entry.Name)
		if err := utils.ValidateStruct(entry); err != nil {
			return nil, models.NewValidationError(
				fmt.Sprintf("%s (línea %d)", consts.MsgMethodEmptyFields, i+1))
		}

		lower := strings.ToLower(entry.Code)
		if _, dup := seen[lower]; dup {
			return nil, models.NewValidationError(
				fmt.Sprintf("%s: %s", consts.MsgMethodDuplicateCode, entry.Code))
		}
		seen[lower] = struct{}{}
		lowerCodes = append(lowerCodes, lower)

		methods = append(methods, storemodels.CollectionMethod{
			Code:      entry.Code,
			CodeLower: lower,
			Name:      entry.Name,
			IsActive:  true,
			CreatedAt: createdAt,
		})
	}

	existing, err := s.repo.FindMethodsByLowerCodes(ctx, lowerCodes)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	if len(existing) > 0 {
		return nil, models.NewValidationError(
			fmt.Sprintf("%s: %s", consts.MsgMethodDuplicateCode, existing[0].Code))
	}

	writeCtx := context.WithoutCancel(ctx)
	ids, err := s.repo.CreateMethods(writeCtx, methods)
	if err != nil {
		if len(ids) > 0 {
			if _, delErr := s.repo.DeleteMethodsByIDs(writeCtx, ids); delErr != nil {
				logger.CtxError(ctx, "Collection method batch compensation failed", delErr,
					slog.Int("inserted", len(ids)))
			}
		}
		// The unique index on codeLower catches a concurrent batch that
		// slipped past the clash lookup above.
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewValidationError(consts.MsgMethodDuplicateCode)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	for i := range methods {
		methods[i].ID = ids[i]
	}

	s.invalidateCatalog(ctx)
	return methods, nil
}

func (s *CollectionMethodService) GetByID(ctx context.Context, id primitive.ObjectID) (*storemodels.CollectionMethod, error) {
	method, err := s.repo.GetMethodByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgMethodNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}
	return method, nil
}

func (s *CollectionMethodService) List(ctx context.Context) ([]storemodels.CollectionMethod, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCollectionMethodCatalog(ctx, consts.CollectionMethodCatalogKey)
		if err != nil {
			logger.CtxWarn(ctx, "Collection method catalog cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	methods, err := s.repo.ListMethods(ctx)
	if err != nil {
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	if s.cache != nil {
		if err := s.cache.SaveCollectionMethodCatalog(ctx, consts.CollectionMethodCatalogKey, methods); err != nil {
			logger.CtxWarn(ctx, "Collection method catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return methods, nil
}

// Update renames a method and/or changes its code. A new code keeps the
// case-insensitive uniqueness rule.
func (s *CollectionMethodService) Update(
	ctx context.Context,
	id primitive.ObjectID,
	req models.CollectionMethodUpdateRequest,
) (*storemodels.CollectionMethod, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, models.NewValidationError(consts.MsgMethodEmptyFields)
		}
		fields["name"] = name
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, models.NewValidationError(consts.MsgMethodEmptyFields)
		}
		lower := strings.ToLower(code)
		clashes, err := s.repo.FindMethodsByLowerCodes(ctx, []string{lower})
		if err != nil {
			return nil, models.NewServerError(consts.MsgUnexpected)
		}
		for _, clash := range clashes {
			if clash.ID != id {
				return nil, models.NewValidationError(
					fmt.Sprintf("%s: %s", consts.MsgMethodDuplicateCode, code))
			}
		}
		fields["code"] = code
		fields["codeLower"] = lower
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError(consts.MsgMethodEmptyFields)
	}

	if err := s.repo.UpdateMethod(context.WithoutCancel(ctx), id, fields); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgMethodNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	s.invalidateCatalog(ctx)
	return s.GetByID(ctx, id)
}

// Toggle activates or deactivates a method. Deactivation never touches the
// installments already collected with it.
func (s *CollectionMethodService) Toggle(ctx context.Context, id primitive.ObjectID, active bool) (*storemodels.CollectionMethod, error) {
	if err := s.repo.SetMethodActive(context.WithoutCancel(ctx), id, active); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(consts.MsgMethodNotFound)
		}
		return nil, models.NewServerError(consts.MsgUnexpected)
	}

	s.invalidateCatalog(ctx)
	return s.GetByID(ctx, id)
}

func (s *CollectionMethodService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, consts.CollectionMethodCatalogKey); err != nil {
		logger.CtxWarn(ctx, "Collection method catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}
