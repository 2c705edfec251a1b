package order

import (
	"context"
	"database/sql"
	"errors"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateTx(ctx context.Context, params CreateOrderParams) (Order, error)
	GetByIDAndUser(ctx context.Context, orderID, userID int) (Order, error)
	Cancel(ctx context.Context, orderID, userID int) error
	UpdateStatus(ctx context.Context, orderID int, status Status) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateTx persists the order header and every line item in one transaction;
// an order row never exists without its items.
func (r *repository) CreateTx(ctx context.Context, params CreateOrderParams) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateTx"),
		zap.Int("user_id", params.UserID),
		zap.Int("item_count", len(params.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	var o Order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, shipping_address)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, total_amount, status, shipping_address, created_at
	`, params.UserID, params.TotalAmount, params.ShippingAddress).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return Order{}, err
	}

	for _, item := range params.Items {
		var oi OrderItem
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, title)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, order_id, product_id, quantity, price, title
		`, o.ID, item.ProductID, item.Quantity, item.Price, item.Title).Scan(
			&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity, &oi.Price, &oi.Title,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("product_id", item.ProductID),
				zap.Error(err),
			)
			return Order{}, err
		}
		o.Items = append(o.Items, oi)
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	log.Info("order created", zap.Int("order_id", o.ID))
	return o, nil
}

// GetByIDAndUser scopes the lookup to the owning user; an order owned by
// someone else scans as no rows, indistinguishable from a missing id.
func (r *repository) GetByIDAndUser(ctx context.Context, orderID, userID int) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}

	o.Items, err = r.getItems(ctx, o.ID)
	return o, err
}

func (r *repository) getItems(ctx context.Context, orderID int) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price, title
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var oi OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity, &oi.Price, &oi.Title); err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	return items, rows.Err()
}

// Cancel moves an owned order to cancelled, but only from a cancellable
// state. The row is locked for the read-check-write so two racing cancels
// (or a cancel racing an admin update) serialize.
func (r *repository) Cancel(ctx context.Context, orderID, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, orderID, userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if !status.Cancellable() {
		return ErrNotCancellable
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, StatusCancelled, orderID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus is the admin overwrite: any caller-supplied status, no
// transition table.
func (r *repository) UpdateStatus(ctx context.Context, orderID int, status Status) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1
		WHERE id = $2
		RETURNING id, user_id, total_amount, status, shipping_address, created_at
	`, status, orderID).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Int("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total_amount, status, shipping_address, created_at
		FROM orders
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
