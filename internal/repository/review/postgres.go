package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertReviewInput) (*domain.Review, bool, error) {
	const q = `
INSERT INTO reviews (user_id, product_id, rating, comment)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id)
DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = now()
RETURNING id::text, user_id::text, product_id::text, rating, comment, created_at, updated_at, (created_at = updated_at)
`
	var rev domain.Review
	var created bool
	err := r.pool.QueryRow(ctx, q, in.UserID, in.ProductID, in.Rating, in.Comment).Scan(
		&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt, &created,
	)
	if err != nil {
		return nil, false, err
	}
	return &rev, created, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, user_id::text, product_id::text, rating, comment, created_at, updated_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	WHERE o.buyer_id = $1
	  AND oi.product_id = $2
	  AND o.status IN ('PAID', 'SHIPPED', 'COMPLETED')
)
`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
