package cart

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

// ownerIDs splits a CartOwner into the nullable column pair carts stores.
func ownerIDs(owner domain.CartOwner) (userID, guestID *string) {
	switch owner.Kind {
	case domain.OwnerUser:
		userID = &owner.ID
	case domain.OwnerGuest:
		guestID = &owner.ID
	}
	return userID, guestID
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	cart, err := r.GetByOwner(ctx, owner)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	userID, guestID := ownerIDs(owner)
	const q = `
INSERT INTO carts (user_id, guest_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
RETURNING id::text, user_id::text, guest_id, created_at
`
	var cart2 domain.Cart
	err = r.pool.QueryRow(ctx, q, userID, guestID).Scan(&cart2.ID, &cart2.UserID, &cart2.GuestID, &cart2.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost a create race; the other request's cart is ours now.
		return r.GetByOwner(ctx, owner)
	}
	if err != nil {
		return nil, err
	}
	cart2.Items = []domain.CartItem{}
	return &cart2, nil
}

func (r *postgresRepo) GetByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	userID, guestID := ownerIDs(owner)
	const q = `
SELECT id::text, user_id::text, guest_id, created_at
FROM carts
WHERE ($1::uuid IS NOT NULL AND user_id = $1)
   OR ($2::text IS NOT NULL AND guest_id = $2)
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, userID, guestID).Scan(&cart.ID, &cart.UserID, &cart.GuestID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	const q = `
SELECT ci.id::text, ci.cart_id::text, ci.product_id::text, ci.quantity, p.title, p.price_cents, ci.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Title, &it.PriceCents, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, cartID, productID, quantity)
	return err
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, owner domain.CartOwner, itemID string, quantity int) error {
	userID, guestID := ownerIDs(owner)
	if quantity == 0 {
		return r.RemoveItem(ctx, owner, itemID)
	}
	const q = `
UPDATE cart_items ci
SET quantity = $1
FROM carts c
WHERE ci.id = $2
  AND c.id = ci.cart_id
  AND (($3::uuid IS NOT NULL AND c.user_id = $3) OR ($4::text IS NOT NULL AND c.guest_id = $4))
`
	cmd, err := r.pool.Exec(ctx, q, quantity, itemID, userID, guestID)
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

func (r *postgresRepo) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID string) error {
	userID, guestID := ownerIDs(owner)
	const q = `
DELETE FROM cart_items ci
USING carts c
WHERE ci.id = $1
  AND c.id = ci.cart_id
  AND (($2::uuid IS NOT NULL AND c.user_id = $2) OR ($3::text IS NOT NULL AND c.guest_id = $3))
`
	cmd, err := r.pool.Exec(ctx, q, itemID, userID, guestID)
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

// MergeGuestIntoUser runs as one serializable transaction so two
// concurrent logins presenting the same guest id cannot double-apply
// quantity increments. Each step is a single set-based statement.
func (r *postgresRepo) MergeGuestIntoUser(ctx context.Context, userID, guestID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var guestCartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE guest_id = $1`, guestID).Scan(&guestCartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil // nothing to merge
	}
	if err != nil {
		return err
	}

	var userCartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, userID).Scan(&userCartID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No user cart yet: adopt the guest cart wholesale.
		_, err = tx.Exec(ctx, `UPDATE carts SET user_id = $1, guest_id = NULL WHERE id = $2`, userID, guestCartID)
		if err != nil {
			return err
		}
		return tx.Commit(ctx)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
UPDATE cart_items u
SET quantity = u.quantity + g.quantity
FROM cart_items g
WHERE u.cart_id = $1 AND g.cart_id = $2 AND u.product_id = g.product_id
`, userCartID, guestCartID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity, created_at)
SELECT $1, product_id, quantity, created_at
FROM cart_items
WHERE cart_id = $2
ON CONFLICT (cart_id, product_id) DO NOTHING
`, userCartID, guestCartID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, guestCartID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, guestCartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
