package coupon

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/domain"
	couponrepo "marketplace/internal/repository/coupon"
)

type Service struct {
	repo couponrepo.Repository
}

func New(repo couponrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Code      string     `json:"code"`
	Kind      string     `json:"kind"`
	Value     int64      `json:"value"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Active    *bool      `json:"active"`
}

func (in Input) validate() (domain.CouponKind, string, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return "", "", domain.Validationf("code required")
	}
	kind := domain.CouponKind(strings.ToUpper(strings.TrimSpace(in.Kind)))
	switch kind {
	case domain.CouponPercentage:
		if in.Value < 1 || in.Value > 100 {
			return "", "", domain.Validationf("percentage value must be between 1 and 100")
		}
	case domain.CouponFixed:
		if in.Value <= 0 {
			return "", "", domain.Validationf("fixed value must be positive")
		}
	default:
		return "", "", domain.Validationf("kind must be PERCENTAGE or FIXED")
	}
	return kind, code, nil
}

func (s *Service) Create(ctx context.Context, sellerID string, in Input) (*domain.Coupon, error) {
	kind, code, err := in.validate()
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return s.repo.Create(ctx, couponrepo.CreateCouponInput{
		SellerID:  sellerID,
		Code:      code,
		Kind:      kind,
		Value:     in.Value,
		ExpiresAt: in.ExpiresAt,
		Active:    active,
	})
}

func (s *Service) ListMine(ctx context.Context, sellerID string) ([]domain.Coupon, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *Service) Update(ctx context.Context, id string, actor domain.User, in Input) (*domain.Coupon, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageCoupon(actor, *existing) {
		return nil, domain.ErrForbidden
	}
	kind, code, err := in.validate()
	if err != nil {
		return nil, err
	}
	active := existing.Active
	if in.Active != nil {
		active = *in.Active
	}
	return s.repo.Update(ctx, id, couponrepo.CreateCouponInput{
		SellerID:  existing.SellerID,
		Code:      code,
		Kind:      kind,
		Value:     in.Value,
		ExpiresAt: in.ExpiresAt,
		Active:    active,
	})
}

func (s *Service) Delete(ctx context.Context, id string, actor domain.User) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageCoupon(actor, *existing) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
