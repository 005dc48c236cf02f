package review

import (
	"context"

	"marketplace/internal/domain"
)

type UpsertReviewInput struct {
	UserID    string
	ProductID string
	Rating    int
	Comment   string
}

type Repository interface {
	// Upsert inserts the user's review for a product, replacing rating and
	// comment when one already exists. The second return reports whether a
	// new row was created.
	Upsert(ctx context.Context, in UpsertReviewInput) (*domain.Review, bool, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	// HasPurchased reports whether the user has an order containing the
	// product in a PAID, SHIPPED, or COMPLETED status.
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}
