package cart

import (
	"context"
	"database/sql"
	"errors"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCart(ctx context.Context, userID int) (*Cart, error)
	GetItems(ctx context.Context, cartID int) ([]Item, error)
	UpsertItem(ctx context.Context, userID, productID, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, productID, quantity int) error
	DeleteItem(ctx context.Context, cartID, productID int) error
	ClearCart(ctx context.Context, userID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, userID int) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetItems(ctx context.Context, cartID int) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetItems"),
		zap.Int("cart_id", cartID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.product_id,
			p.title,
			p.price,
			ci.quantity,
			p.image,
			p.description,
			p.category
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ProductID, &it.Title, &it.Price, &it.Quantity,
			&it.Image, &it.Description, &it.Category,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// UpsertItem creates the user's cart when absent and merges the quantity into
// an existing line for the same product, all in a single statement. The
// unique constraints on carts(user_id) and cart_items(cart_id, product_id)
// make concurrent adds serialize on the row instead of losing updates.
func (r *repository) UpsertItem(ctx context.Context, userID, productID, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertItem"),
		zap.Int("user_id", userID),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
	)

	_, err := r.db.ExecContext(ctx, `
		WITH c AS (
			INSERT INTO carts (user_id)
			VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
			RETURNING id
		)
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT c.id, $2, $3 FROM c
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, userID, productID, quantity)

	if err != nil {
		log.Error("failed to upsert cart item", zap.Error(err))
		return err
	}

	log.Info("cart item upserted")
	return nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, productID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1
		WHERE cart_id = $2 AND product_id = $3
	`, quantity, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *repository) DeleteItem(ctx context.Context, cartID, productID int) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ClearCart removes the lines and the cart row together; clearing a user
// without a cart is a no-op.
func (r *repository) ClearCart(ctx context.Context, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
