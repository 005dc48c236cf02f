package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/domain"
)

type userSeed struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type productSeed struct {
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Stock       int
	Category    string
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "admin@example.com", Password: "Admin1234", Name: "Demo Admin", Role: domain.RoleAdmin},
		{Email: "seller@example.com", Password: "Seller1234", Name: "Demo Seller", Role: domain.RoleSeller},
		{Email: "buyer@example.com", Password: "Buyer1234", Name: "Demo Buyer", Role: domain.RoleBuyer},
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		id, err := ensureUser(ctx, pool, u)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		ids[u.Email] = id
	}

	apparelID, err := ensureCategory(ctx, pool, "Apparel", "apparel")
	if err != nil {
		return fmt.Errorf("ensure category apparel: %w", err)
	}
	homeID, err := ensureCategory(ctx, pool, "Home & Kitchen", "home-and-kitchen")
	if err != nil {
		return fmt.Errorf("ensure category home-and-kitchen: %w", err)
	}

	sellerID := ids["seller@example.com"]
	products := []productSeed{
		{
			Slug:        "demo-t-shirt",
			Title:       "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Stock:       50,
			Category:    apparelID,
		},
		{
			Slug:        "demo-mug",
			Title:       "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Stock:       120,
			Category:    homeID,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, sellerID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	if err := ensureCoupon(ctx, pool, sellerID, "WELCOME10", domain.CouponPercentage, 10); err != nil {
		return fmt.Errorf("ensure coupon WELCOME10: %w", err)
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO users (email, password_hash, name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Email, string(hash), u.Name, string(u.Role)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, slug string) (string, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, sellerID string, p productSeed) error {
	// Seeded products go straight to APPROVED so the storefront has
	// something to show without a moderation step.
	const q = `
INSERT INTO products (seller_id, category_id, title, slug, description, price_cents, stock, status)
SELECT $1, $2, $3, $4, $5, $6, $7, 'APPROVED'
WHERE NOT EXISTS (SELECT 1 FROM products WHERE seller_id = $1 AND slug = $4)
`
	_, err := pool.Exec(ctx, q, sellerID, p.Category, p.Title, p.Slug, p.Description, p.PriceCents, p.Stock)
	return err
}

func ensureCoupon(ctx context.Context, pool *pgxpool.Pool, sellerID, code string, kind domain.CouponKind, value int64) error {
	const q = `
INSERT INTO coupons (seller_id, code, kind, value, active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (code) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value, active = TRUE
`
	_, err := pool.Exec(ctx, q, sellerID, code, string(kind), value)
	return err
}
