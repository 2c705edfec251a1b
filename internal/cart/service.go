package cart

import (
	"context"
	"unicode/utf8"

	"neoverse-be/internal/logger"
	"neoverse-be/internal/product"

	"go.uber.org/zap"
)

const descriptionLimit = 100

// Service defines the business logic for carts.
type Service interface {
	GetCart(ctx context.Context, userID int) (*View, error)
	AddItem(ctx context.Context, userID, productID, quantity int) (product.Product, error)
	UpdateItem(ctx context.Context, userID, productID, quantity int) error
	ClearCart(ctx context.Context, userID int) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// GetCart returns the user's cart joined with live product data. Long
// descriptions are truncated for the cart view.
func (s *service) GetCart(ctx context.Context, userID int) (*View, error) {
	c, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &View{UserID: userID, Items: []Item{}}, nil
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Description = truncate(items[i].Description)
	}

	return &View{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		Items:     items,
	}, nil
}

// AddItem merges the quantity into the user's cart, creating the cart lazily.
// The product must exist in the catalog; it is checked before any mutation so
// a bad add leaves nothing behind.
func (s *service) AddItem(ctx context.Context, userID, productID, quantity int) (product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Int("user_id", userID),
		zap.Int("product_id", productID),
	)

	if quantity < 1 {
		return product.Product{}, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return product.Product{}, err
	}

	if err := s.repo.UpsertItem(ctx, userID, productID, quantity); err != nil {
		return product.Product{}, err
	}

	log.Info("item added to cart", zap.Int("quantity", quantity))
	return p, nil
}

// UpdateItem overwrites the quantity of an existing line; zero removes it.
func (s *service) UpdateItem(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	c, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCartNotFound
	}

	if quantity == 0 {
		return s.repo.DeleteItem(ctx, c.ID, productID)
	}

	return s.repo.UpdateItemQuantity(ctx, c.ID, productID, quantity)
}

func (s *service) ClearCart(ctx context.Context, userID int) error {
	return s.repo.ClearCart(ctx, userID)
}

// truncate caps a description at descriptionLimit characters. The cut is made
// per rune so a multi-byte character is never split mid-sequence.
func truncate(desc *string) *string {
	if desc == nil || utf8.RuneCountInString(*desc) <= descriptionLimit {
		return desc
	}
	runes := []rune(*desc)
	short := string(runes[:descriptionLimit]) + "..."
	return &short
}
