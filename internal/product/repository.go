package product

import (
	"context"
	"database/sql"
	"errors"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, limit int, sort string) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query, category string) ([]Product, error)
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	Update(ctx context.Context, id int, params UpdateProductParams) (Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	BulkInsert(ctx context.Context, products []SeedProduct) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, title, price, description, category, image, rating, rating_count"

func scanProduct(row *sql.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Price, &p.Description,
		&p.Category, &p.Image, &p.Rating, &p.RatingCount,
	)
	return p, err
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Price, &p.Description,
			&p.Category, &p.Image, &p.Rating, &p.RatingCount,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) List(ctx context.Context, limit int, sort string) ([]Product, error) {
	query := "SELECT " + productColumns + " FROM products"

	switch sort {
	case "desc":
		query += " ORDER BY id DESC"
	case "asc":
		query += " ORDER BY id ASC"
	}

	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *repository) GetByID(ctx context.Context, id int) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM products WHERE category IS NOT NULL",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE category = $1", category,
	)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// Search matches the query against title, description and category; a
// category filter narrows the result further when it differs from the query.
func (r *repository) Search(ctx context.Context, query, category string) ([]Product, error) {
	sqlQuery := "SELECT " + productColumns + " FROM products"
	where := ""
	args := []any{}

	if query != "" {
		where = " WHERE (title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)"
		args = append(args, "%"+query+"%")
	}

	if category != "" {
		if where == "" {
			where = " WHERE category = $1"
		} else {
			where += " AND category = $2"
		}
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery+where, args...)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("title", params.Title),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, price, description, category, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		params.Title, params.Price, params.Description, params.Category, params.Image,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created", zap.Int("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int, params UpdateProductParams) (Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products SET
			title       = COALESCE($2, title),
			price       = COALESCE($3, price),
			description = COALESCE($4, description),
			category    = COALESCE($5, category),
			image       = COALESCE($6, image)
		WHERE id = $1
		RETURNING `+productColumns,
		id, params.Title, params.Price, params.Description, params.Category, params.Image,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

// BulkInsert loads the seed dataset in one transaction so a failed seed
// leaves the catalog empty rather than half-filled.
func (r *repository) BulkInsert(ctx context.Context, products []SeedProduct) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (title, price, description, category, image, rating, rating_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.Title, p.Price, p.Description, p.Category, p.Image, p.Rating.Rate, p.Rating.Count)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
