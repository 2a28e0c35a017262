package collectionmethod

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	storemodels "mutual/loanlifecycle/internal/pkg/store/models"
)

type MockCollectionMethodRepository struct {
	mock.Mock
}

func (m *MockCollectionMethodRepository) CreateMethods(
	ctx context.Context,
	methods []storemodels.CollectionMethod,
) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, methods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockCollectionMethodRepository) DeleteMethodsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionMethodRepository) GetMethodByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*storemodels.CollectionMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.CollectionMethod), args.Error(1)
}

func (m *MockCollectionMethodRepository) FindMethodsByLowerCodes(
	ctx context.Context,
	lowerCodes []string,
) ([]storemodels.CollectionMethod, error) {
	args := m.Called(ctx, lowerCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.CollectionMethod), args.Error(1)
}

func (m *MockCollectionMethodRepository) ListMethods(ctx context.Context) ([]storemodels.CollectionMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.CollectionMethod), args.Error(1)
}

func (m *MockCollectionMethodRepository) UpdateMethod(
	ctx context.Context,
	id primitive.ObjectID,
	fields map[string]interface{},
) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockCollectionMethodRepository) SetMethodActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCatalogCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCatalogCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCatalogCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogCache) GetLoanTypeCatalog(ctx context.Context, key string) ([]storemodels.LoanType, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.LoanType), args.Error(1)
}

func (m *MockCatalogCache) SaveLoanTypeCatalog(ctx context.Context, key string, catalog []storemodels.LoanType) error {
	args := m.Called(ctx, key, catalog)
	return args.Error(0)
}

func (m *MockCatalogCache) GetCollectionMethodCatalog(
	ctx context.Context,
	key string,
) ([]storemodels.CollectionMethod, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storemodels.CollectionMethod), args.Error(1)
}

func (m *MockCatalogCache) SaveCollectionMethodCatalog(
	ctx context.Context,
	key string,
	catalog []storemodels.CollectionMethod,
) error {
	args := m.Called(ctx, key, catalog)
	return args.Error(0)
}

func setupMethodTest() (*CollectionMethodService, *MockCollectionMethodRepository, *MockCatalogCache) {
	repo := new(MockCollectionMethodRepository)
	cache := new(MockCatalogCache)
	fixedNow := func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return NewCollectionMethodService(repo, cache, fixedNow), repo, cache
}

func TestRegisterBatch(t *testing.T) {
	ctx := context.Background()

	entries := []models.CollectionMethodEntry{
		{Code: "EFE", Name: "Efectivo"},
		{Code: "DEB", Name: "Débito automático"},
	}

	t.Run("Success", func(t *testing.T) {
		service, repo, cache := setupMethodTest()
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe", "deb"}).
			Return([]storemodels.CollectionMethod{}, nil).Once()
		repo.On("CreateMethods", mock.Anything, mock.Anything).Return(ids, nil).Once()
		cache.On("Delete", mock.Anything, consts.CollectionMethodCatalogKey).Return(nil).Once()

		methods, err := service.RegisterBatch(ctx, entries)

		require.NoError(t, err)
		require.Len(t, methods, 2)
		assert.Equal(t, ids[0], methods[0].ID)
		assert.Equal(t, "efe", methods[0].CodeLower)
		assert.True(t, methods[0].IsActive)
		cache.AssertExpectations(t)
	})

	t.Run("Duplicate code inside the batch, case-insensitive", func(t *testing.T) {
		service, repo, _ := setupMethodTest()

		methods, err := service.RegisterBatch(ctx, []models.CollectionMethodEntry{
			{Code: "A", Name: "Uno"},
			{Code: "a", Name: "Dos"},
		})

		assert.Nil(t, methods)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindValidation, de.Kind)
		repo.AssertNotCalled(t, "CreateMethods", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate against the store, case-insensitive", func(t *testing.T) {
		service, repo, _ := setupMethodTest()

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe", "deb"}).
			Return([]storemodels.CollectionMethod{{Code: "efe", CodeLower: "efe"}}, nil).Once()

		methods, err := service.RegisterBatch(ctx, entries)

		assert.Nil(t, methods)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindValidation, de.Kind)
		repo.AssertNotCalled(t, "CreateMethods", mock.Anything, mock.Anything)
	})

	t.Run("Empty entry fails the whole batch before any write", func(t *testing.T) {
		service, repo, _ := setupMethodTest()

		methods, err := service.RegisterBatch(ctx, []models.CollectionMethodEntry{
			{Code: "EFE", Name: "Efectivo"},
			{Code: "", Name: "Sin código"},
		})

		assert.Nil(t, methods)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindValidation, de.Kind)
		repo.AssertNotCalled(t, "FindMethodsByLowerCodes", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateMethods", mock.Anything, mock.Anything)
	})

	t.Run("Empty batch", func(t *testing.T) {
		service, _, _ := setupMethodTest()

		methods, err := service.RegisterBatch(ctx, nil)

		assert.Nil(t, methods)
		assert.Error(t, err)
	})

	t.Run("Submit from a staged batch", func(t *testing.T) {
		service, repo, cache := setupMethodTest()
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")
		batch.Stage("DEB", "Cobro manual")
		require.NoError(t, batch.Edit(1, "DEB", "Débito automático"))

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe", "deb"}).
			Return([]storemodels.CollectionMethod{}, nil).Once()
		repo.On("CreateMethods", mock.Anything, mock.Anything).Return(ids, nil).Once()
		cache.On("Delete", mock.Anything, consts.CollectionMethodCatalogKey).Return(nil).Once()

		methods, err := batch.Submit(ctx, service)

		require.NoError(t, err)
		require.Len(t, methods, 2)
		assert.Equal(t, "Débito automático", methods[1].Name)
	})

	t.Run("Partial insert failure compensates with a delete", func(t *testing.T) {
		service, repo, _ := setupMethodTest()
		partialIDs := []primitive.ObjectID{primitive.NewObjectID()}

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe", "deb"}).
			Return([]storemodels.CollectionMethod{}, nil).Once()
		repo.On("CreateMethods", mock.Anything, mock.Anything).
			Return(partialIDs, fmt.Errorf("write conflict")).Once()
		repo.On("DeleteMethodsByIDs", mock.Anything, partialIDs).Return(int64(1), nil).Once()

		methods, err := service.RegisterBatch(ctx, entries)

		assert.Nil(t, methods)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindServer, de.Kind)
		repo.AssertExpectations(t)
	})

	t.Run("Concurrent duplicate caught by the unique index", func(t *testing.T) {
		service, repo, _ := setupMethodTest()
		dupErr := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Code: 11000, Message: "E11000 duplicate key error"}},
		}}

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe", "deb"}).
			Return([]storemodels.CollectionMethod{}, nil).Once()
		repo.On("CreateMethods", mock.Anything, mock.Anything).
			Return([]primitive.ObjectID(nil), dupErr).Once()

		methods, err := service.RegisterBatch(ctx, entries)

		assert.Nil(t, methods)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindValidation, de.Kind)
		assert.Equal(t, consts.MsgMethodDuplicateCode, de.Message)
		repo.AssertNotCalled(t, "DeleteMethodsByIDs", mock.Anything, mock.Anything)
	})
}

func TestUpdateMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("Rename", func(t *testing.T) {
		service, repo, cache := setupMethodTest()
		id := primitive.NewObjectID()
		name := "Débito en cuenta"
		updated := &storemodels.CollectionMethod{ID: id, Code: "DEB", Name: name}

		repo.On("UpdateMethod", mock.Anything, id, map[string]interface{}{"name": name}).Return(nil).Once()
		cache.On("Delete", mock.Anything, consts.CollectionMethodCatalogKey).Return(nil).Once()
		repo.On("GetMethodByID", mock.Anything, id).Return(updated, nil).Once()

		method, err := service.Update(ctx, id, models.CollectionMethodUpdateRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, name, method.Name)
	})

	t.Run("Code change checks uniqueness", func(t *testing.T) {
		service, repo, _ := setupMethodTest()
		id := primitive.NewObjectID()
		code := "EFE"

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe"}).
			Return([]storemodels.CollectionMethod{{ID: primitive.NewObjectID(), Code: "efe"}}, nil).Once()

		method, err := service.Update(ctx, id, models.CollectionMethodUpdateRequest{Code: &code})

		assert.Nil(t, method)
		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindValidation, de.Kind)
		repo.AssertNotCalled(t, "UpdateMethod", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Changing the code to its own current value is allowed", func(t *testing.T) {
		service, repo, cache := setupMethodTest()
		id := primitive.NewObjectID()
		code := "EFE"
		updated := &storemodels.CollectionMethod{ID: id, Code: code}

		repo.On("FindMethodsByLowerCodes", mock.Anything, []string{"efe"}).
			Return([]storemodels.CollectionMethod{{ID: id, Code: "EFE", CodeLower: "efe"}}, nil).Once()
		repo.On("UpdateMethod", mock.Anything, id,
			map[string]interface{}{"code": "EFE", "codeLower": "efe"}).Return(nil).Once()
		cache.On("Delete", mock.Anything, consts.CollectionMethodCatalogKey).Return(nil).Once()
		repo.On("GetMethodByID", mock.Anything, id).Return(updated, nil).Once()

		method, err := service.Update(ctx, id, models.CollectionMethodUpdateRequest{Code: &code})

		require.NoError(t, err)
		assert.Equal(t, code, method.Code)
	})

	t.Run("Empty update", func(t *testing.T) {
		service, _, _ := setupMethodTest()

		method, err := service.Update(ctx, primitive.NewObjectID(), models.CollectionMethodUpdateRequest{})

		assert.Nil(t, method)
		assert.Error(t, err)
	})

	t.Run("Blank name", func(t *testing.T) {
		service, repo, _ := setupMethodTest()
		blank := "   "

		method, err := service.Update(ctx, primitive.NewObjectID(), models.CollectionMethodUpdateRequest{Name: &blank})

		assert.Nil(t, method)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateMethod", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestToggleMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivate", func(t *testing.T) {
		service, repo, cache := setupMethodTest()
		id := primitive.NewObjectID()
		toggled := &storemodels.CollectionMethod{ID: id, Code: "EFE", IsActive: false}

		repo.On("SetMethodActive", mock.Anything, id, false).Return(nil).Once()
		cache.On("Delete", mock.Anything, consts.CollectionMethodCatalogKey).Return(nil).Once()
		repo.On("GetMethodByID", mock.Anything, id).Return(toggled, nil).Once()

		method, err := service.Toggle(ctx, id, false)

		require.NoError(t, err)
		assert.False(t, method.IsActive)
	})
}

func TestListMethods(t *testing.T) {
	ctx := context.Background()

	catalog := []storemodels.CollectionMethod{
		{ID: primitive.NewObjectID(), Code: "DEB", Name: "Débito automático", IsActive: true},
		{ID: primitive.NewObjectID(), Code: "EFE", Name: "Efectivo", IsActive: true},
	}

	t.Run("Cache hit", func(t *testing.T) {
		service, repo, cache := setupMethodTest()

		cache.On("GetCollectionMethodCatalog", mock.Anything, consts.CollectionMethodCatalogKey).
			Return(catalog, nil).Once()

		methods, err := service.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, catalog, methods)
		repo.AssertNotCalled(t, "ListMethods", mock.Anything)
	})

	t.Run("Cache miss reads through", func(t *testing.T) {
		service, repo, cache := setupMethodTest()

		cache.On("GetCollectionMethodCatalog", mock.Anything, consts.CollectionMethodCatalogKey).
			Return(nil, nil).Once()
		repo.On("ListMethods", mock.Anything).Return(catalog, nil).Once()
		cache.On("SaveCollectionMethodCatalog", mock.Anything, consts.CollectionMethodCatalogKey, catalog).
			Return(nil).Once()

		methods, err := service.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, catalog, methods)
		cache.AssertExpectations(t)
	})
}
