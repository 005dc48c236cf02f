package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, buyer_id::text, status, total_cents, discount_cents, coupon_code, payment_intent_id, created_at, updated_at`

// Create inserts the order and its snapshot lines, decrements stock with
// a guard, and clears the source cart, all in one transaction so a crash
// cannot leave a half-created order or a cleared cart without an order.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (buyer_id, total_cents, discount_cents, coupon_code)
VALUES ($1, $2, $3, $4)
RETURNING ` + orderColumns
	var o domain.Order
	if err := tx.QueryRow(ctx, insertOrder, in.BuyerID, in.TotalCents, in.DiscountCents, in.CouponCode).Scan(
		&o.ID, &o.BuyerID, &o.Status, &o.TotalCents, &o.DiscountCents, &o.CouponCode, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	for _, line := range in.Lines {
		cmd, err := tx.Exec(ctx, `
UPDATE products SET stock = stock - $1, updated_at = now()
WHERE id = $2 AND stock >= $1
`, line.Quantity, line.ProductID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrInsufficientStock
		}

		var item domain.OrderItem
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, seller_id, title, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, order_id::text, product_id::text, seller_id::text, title, unit_price_cents, quantity
`, o.ID, line.ProductID, line.SellerID, line.Title, line.UnitPriceCents, line.Quantity).Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.SellerID, &item.Title, &item.UnitPriceCents, &item.Quantity,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, in.CartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order=%s buyer=%s total=%d lines=%d", o.ID, o.BuyerID, o.TotalCents, len(o.Items))
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.BuyerID, &o.Status, &o.TotalCents, &o.DiscountCents, &o.CouponCode, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE buyer_id = $1
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q, buyerID)
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	const q = `
SELECT DISTINCT o.id::text, o.buyer_id::text, o.status, o.total_cents, o.discount_cents, o.coupon_code, o.payment_intent_id, o.created_at, o.updated_at
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE oi.seller_id = $1
ORDER BY o.created_at DESC
`
	return r.queryOrders(ctx, q, sellerID)
}

func (r *postgresRepo) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	return r.queryOrders(ctx, q, limit, offset)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING id::text
`
	var updated string
	if err := r.pool.QueryRow(ctx, q, status, id).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, updated)
}

func (r *postgresRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET payment_intent_id = $1, updated_at = now() WHERE id = $2`, intentID, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GlobalStats(ctx context.Context) (*Stats, error) {
	const q = `
SELECT COUNT(*),
       COALESCE(SUM(total_cents) FILTER (WHERE status IN ('PAID', 'SHIPPED', 'COMPLETED')), 0)
FROM orders
`
	var s Stats
	if err := r.pool.QueryRow(ctx, q).Scan(&s.Orders, &s.RevenueCents); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) SellerStats(ctx context.Context, sellerID string) (*Stats, error) {
	const q = `
SELECT COUNT(DISTINCT o.id),
       COALESCE(SUM(oi.unit_price_cents * oi.quantity) FILTER (WHERE o.status IN ('PAID', 'SHIPPED', 'COMPLETED')), 0)
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE oi.seller_id = $1
`
	var s Stats
	if err := r.pool.QueryRow(ctx, q, sellerID).Scan(&s.Orders, &s.RevenueCents); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Status, &o.TotalCents, &o.DiscountCents, &o.CouponCode, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, seller_id::text, title, unit_price_cents, quantity
FROM order_items
WHERE order_id = ANY($1)
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SellerID, &it.Title, &it.UnitPriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	return result, rows.Err()
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
