package product

import (
	"context"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, limit int, sort string) ([]Product, error)
	Get(ctx context.Context, id int) (Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query, category string) ([]Product, error)
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	Update(ctx context.Context, id int, params UpdateProductParams) (Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	SeedIfEmpty(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, limit int, sort string) ([]Product, error) {
	return s.repo.List(ctx, limit, sort)
}

func (s *service) Get(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *service) Search(ctx context.Context, query, category string) ([]Product, error) {
	// A category identical to the free-text query adds nothing to the filter.
	if category != "" && category == query {
		category = ""
	}
	return s.repo.Search(ctx, query, category)
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, id int, params UpdateProductParams) (Product, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// SeedIfEmpty loads the bundled catalog dataset when the products table holds
// zero rows; it never duplicates rows on repeated invocation. Returns the row
// count after the call.
func (s *service) SeedIfEmpty(ctx context.Context) (int, error) {
	log := logger.FromCtx(ctx)

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info("catalog already seeded, skipping", zap.Int("count", count))
		return count, nil
	}

	seed, err := seedProducts()
	if err != nil {
		return 0, err
	}

	if err := s.repo.BulkInsert(ctx, seed); err != nil {
		log.Error("failed to seed catalog", zap.Error(err))
		return 0, err
	}

	log.Info("catalog seeded", zap.Int("count", len(seed)))
	return len(seed), nil
}
