package order

import (
	"context"

	"marketplace/internal/domain"
)

// CreateOrderLine is one snapshotted line for order creation.
type CreateOrderLine struct {
	ProductID      string
	SellerID       string
	Title          string
	UnitPriceCents int64
	Quantity       int
}

// CreateOrderInput describes the whole checkout write: the order row, its
// snapshot lines, and the cart to clear, applied in one transaction.
type CreateOrderInput struct {
	BuyerID       string
	CartID        string
	TotalCents    int64
	DiscountCents int64
	CouponCode    *string
	Lines         []CreateOrderLine
}

// Stats aggregates order counts and recognized revenue (orders that
// reached PAID or later, excluding CANCELLED/REFUNDED).
type Stats struct {
	Orders       int64 `json:"orders"`
	RevenueCents int64 `json:"revenueCents"`
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	SetPaymentIntent(ctx context.Context, id, intentID string) error
	GlobalStats(ctx context.Context) (*Stats, error)
	SellerStats(ctx context.Context, sellerID string) (*Stats, error)
}
