package coupon

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

const couponColumns = `id::text, seller_id::text, code, kind, value, expires_at, active, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateCouponInput) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (seller_id, code, kind, value, expires_at, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + couponColumns
	c, err := scanCoupon(r.pool.QueryRow(ctx, q, in.SellerID, in.Code, in.Kind, in.Value, in.ExpiresAt, in.Active))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	return r.getOne(ctx, q, code)
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Coupon, error) {
	const q = `
SELECT ` + couponColumns + `
FROM coupons
WHERE seller_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateCouponInput) (*domain.Coupon, error) {
	const q = `
UPDATE coupons
SET code = $1, kind = $2, value = $3, expires_at = $4, active = $5
WHERE id = $6
RETURNING ` + couponColumns
	c, err := scanCoupon(r.pool.QueryRow(ctx, q, in.Code, in.Kind, in.Value, in.ExpiresAt, in.Active, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
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

func (r *postgresRepo) getOne(ctx context.Context, q string, args ...interface{}) (*domain.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := row.Scan(&c.ID, &c.SellerID, &c.Code, &c.Kind, &c.Value, &c.ExpiresAt, &c.Active, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
