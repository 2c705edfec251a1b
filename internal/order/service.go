package order

import (
	"context"
	"strings"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, params CreateOrderParams) (Order, error)
	Get(ctx context.Context, orderID, userID int) (Order, error)
	Cancel(ctx context.Context, orderID, userID int) error
	AdminUpdateStatus(ctx context.Context, orderID int, status Status) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create persists a new pending order from the submitted item snapshots.
// Prices and titles are stored as given; the catalog is not consulted.
func (s *service) Create(ctx context.Context, params CreateOrderParams) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("user_id", params.UserID),
		zap.Int("item_count", len(params.Items)),
	)

	if len(params.Items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	if strings.TrimSpace(params.ShippingAddress) == "" {
		return Order{}, ErrMissingShipping
	}

	o, err := s.repo.CreateTx(ctx, params)
	if err != nil {
		return Order{}, err
	}

	log.Info("order created",
		zap.Int("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
	)
	return o, nil
}

func (s *service) Get(ctx context.Context, orderID, userID int) (Order, error) {
	return s.repo.GetByIDAndUser(ctx, orderID, userID)
}

func (s *service) Cancel(ctx context.Context, orderID, userID int) error {
	return s.repo.Cancel(ctx, orderID, userID)
}

func (s *service) AdminUpdateStatus(ctx context.Context, orderID int, status Status) (Order, error) {
	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *service) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}
