package coupon

import (
	"context"
	"time"

	"marketplace/internal/domain"
)

type CreateCouponInput struct {
	SellerID  string
	Code      string
	Kind      domain.CouponKind
	Value     int64
	ExpiresAt *time.Time
	Active    bool
}

type Repository interface {
	Create(ctx context.Context, in CreateCouponInput) (*domain.Coupon, error)
	GetByID(ctx context.Context, id string) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Coupon, error)
	Update(ctx context.Context, id string, in CreateCouponInput) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
}
