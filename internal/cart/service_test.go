package cart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"neoverse-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCart(ctx context.Context, userID int) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) GetItems(ctx context.Context, cartID int) ([]Item, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) UpsertItem(ctx context.Context, userID, productID, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, cartID, productID, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, cartID, productID int) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository mocks product.Repository for the catalog lookup.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, limit int, sort string) ([]product.Product, error) {
	args := m.Called(ctx, limit, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int) (product.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query, category string) ([]product.Product, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, params product.CreateProductParams) (product.Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int, params product.UpdateProductParams) (product.Product, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) BulkInsert(ctx context.Context, products []product.SeedProduct) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func TestService_GetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("NoCartGivesEmptyView", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetCart", ctx, 1).Return(nil, nil)

		view, err := svc.GetCart(ctx, 1)
		assert.NoError(t, err)
		require.NotNil(t, view)
		assert.Zero(t, view.ID)
		assert.Equal(t, 1, view.UserID)
		assert.Empty(t, view.Items)
		assert.NotNil(t, view.Items)
		mockRepo.AssertNotCalled(t, "GetItems")
	})

	t.Run("TruncatesLongDescriptions", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		long := strings.Repeat("x", 150)
		short := "short"
		mockRepo.On("GetCart", ctx, 1).Return(&Cart{ID: 10, UserID: 1}, nil)
		mockRepo.On("GetItems", ctx, 10).Return([]Item{
			{ProductID: 1, Title: "A", Description: &long},
			{ProductID: 2, Title: "B", Description: &short},
			{ProductID: 3, Title: "C"},
		}, nil)

		view, err := svc.GetCart(ctx, 1)
		assert.NoError(t, err)
		require.Len(t, view.Items, 3)
		require.NotNil(t, view.Items[0].Description)
		assert.Len(t, *view.Items[0].Description, descriptionLimit+3)
		assert.True(t, strings.HasSuffix(*view.Items[0].Description, "..."))
		assert.Equal(t, "short", *view.Items[1].Description)
		assert.Nil(t, view.Items[2].Description)
	})

	t.Run("TruncatesMultiByteOnRuneBoundary", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		// 99 ASCII chars followed by multi-byte runes straddling the limit.
		long := strings.Repeat("a", 99) + "éもじ" + strings.Repeat("b", 50)
		exact := strings.Repeat("あ", descriptionLimit)
		mockRepo.On("GetCart", ctx, 1).Return(&Cart{ID: 10, UserID: 1}, nil)
		mockRepo.On("GetItems", ctx, 10).Return([]Item{
			{ProductID: 1, Title: "A", Description: &long},
			{ProductID: 2, Title: "B", Description: &exact},
		}, nil)

		view, err := svc.GetCart(ctx, 1)
		assert.NoError(t, err)
		require.Len(t, view.Items, 2)
		require.NotNil(t, view.Items[0].Description)
		got := *view.Items[0].Description
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("a", 99)+"é...", got)
		assert.Equal(t, descriptionLimit+3, utf8.RuneCountInString(got))
		// exactly at the limit stays untouched even though it is 300 bytes
		assert.Equal(t, exact, *view.Items[1].Description)
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		p := product.Product{ID: 5, Title: "Backpack", Price: 109.95}
		mockProducts.On("GetByID", ctx, 5).Return(p, nil)
		mockRepo.On("UpsertItem", ctx, 1, 5, 2).Return(nil)

		got, err := svc.AddItem(ctx, 1, 5, 2)
		assert.NoError(t, err)
		assert.Equal(t, p, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		_, err := svc.AddItem(ctx, 1, 5, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		mockProducts.AssertNotCalled(t, "GetByID")
		mockRepo.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, 99).Return(product.Product{}, product.ErrProductNotFound)

		_, err := svc.AddItem(ctx, 1, 99, 1)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("UpsertError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, 5).Return(product.Product{ID: 5}, nil)
		mockRepo.On("UpsertItem", ctx, 1, 5, 1).Return(errors.New("db error"))

		_, err := svc.AddItem(ctx, 1, 5, 1)
		assert.Error(t, err)
	})
}

func TestService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesQuantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetCart", ctx, 1).Return(&Cart{ID: 10, UserID: 1}, nil)
		mockRepo.On("UpdateItemQuantity", ctx, 10, 5, 4).Return(nil)

		assert.NoError(t, svc.UpdateItem(ctx, 1, 5, 4))
		mockRepo.AssertExpectations(t)
	})

	t.Run("ZeroQuantityDeletes", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetCart", ctx, 1).Return(&Cart{ID: 10, UserID: 1}, nil)
		mockRepo.On("DeleteItem", ctx, 10, 5).Return(nil)

		assert.NoError(t, svc.UpdateItem(ctx, 1, 5, 0))
		mockRepo.AssertNotCalled(t, "UpdateItemQuantity")
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		err := svc.UpdateItem(ctx, 1, 5, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		mockRepo.AssertNotCalled(t, "GetCart")
	})

	t.Run("NoCart", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetCart", ctx, 1).Return(nil, nil)

		err := svc.UpdateItem(ctx, 1, 5, 2)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("ItemNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("GetCart", ctx, 1).Return(&Cart{ID: 10, UserID: 1}, nil)
		mockRepo.On("UpdateItemQuantity", ctx, 10, 99, 2).Return(ErrItemNotFound)

		err := svc.UpdateItem(ctx, 1, 99, 2)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestService_ClearCart(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, new(MockProductRepository))

	mockRepo.On("ClearCart", ctx, 1).Return(nil)

	assert.NoError(t, svc.ClearCart(ctx, 1))
}
