package order

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"marketplace/internal/domain"
	orderrepo "marketplace/internal/repository/order"
)

// Service converts carts into orders and owns the status state machine.
type Service struct {
	repo        orderRepo
	cartRepo    cartRepo
	productRepo productRepo
	couponRepo  couponRepo
	logger      *log.Logger
	now         func() time.Time
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type cartRepo interface {
	GetByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type couponRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

func New(repo orderRepo, carts cartRepo, products productRepo, coupons couponRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		cartRepo:    carts,
		productRepo: products,
		couponRepo:  coupons,
		logger:      logger,
		now:         time.Now,
	}
}

// Checkout snapshots the user's cart into an immutable order. Line prices
// and titles are copied from the live products at this instant; the
// repository applies the order insert, stock decrement, and cart clear in
// one transaction.
func (s *Service) Checkout(ctx context.Context, userID, couponCode string) (*domain.Order, error) {
	cart, err := s.cartRepo.GetByOwner(ctx, domain.UserOwner(userID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var total int64
	lines := make([]orderrepo.CreateOrderLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		total += product.PriceCents * int64(it.Quantity)
		lines = append(lines, orderrepo.CreateOrderLine{
			ProductID:      product.ID,
			SellerID:       product.SellerID,
			Title:          product.Title,
			UnitPriceCents: product.PriceCents,
			Quantity:       it.Quantity,
		})
	}

	var discount int64
	var code *string
	if couponCode = strings.TrimSpace(couponCode); couponCode != "" {
		coupon, err := s.couponRepo.GetByCode(ctx, couponCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Validationf("unknown coupon code")
			}
			return nil, err
		}
		if !coupon.Redeemable(s.now()) {
			return nil, domain.Validationf("coupon is not redeemable")
		}
		discount = coupon.Discount(total)
		code = &coupon.Code
	}

	order, err := s.repo.Create(ctx, orderrepo.CreateOrderInput{
		BuyerID:       userID,
		CartID:        cart.ID,
		TotalCents:    total - discount,
		DiscountCents: discount,
		CouponCode:    code,
		Lines:         lines,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order service: checkout user=%s order=%s total=%d", userID, order.ID, order.TotalCents)
	return order, nil
}

// GetByID returns the order when the actor is entitled to see it.
func (s *Service) GetByID(ctx context.Context, id string, actor domain.User) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewOrder(actor, *order) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

func (s *Service) ListForSeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	return s.repo.ListAll(ctx, limit, offset)
}

// UpdateStatus moves an order along the strict transition graph on behalf
// of an entitled actor. A same-status update succeeds without a write.
func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, actor domain.User) (*domain.Order, error) {
	if !domain.ValidOrderStatus(next) {
		return nil, domain.Validationf("unknown order status %q", next)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpdateOrderStatus(actor, *order) {
		return nil, domain.ErrForbidden
	}
	if order.Status == next {
		return order, nil
	}
	if !domain.CanTransition(order.Status, next) {
		return nil, domain.ErrInvalidOrderState
	}
	return s.repo.UpdateStatus(ctx, id, next)
}

// MarkPaid transitions a pending order to PAID on behalf of the payment
// webhook. An order already at PAID (or later) is left alone so replayed
// deliveries stay idempotent.
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderPending {
		s.logger.Printf("order service: mark-paid skipped order=%s status=%s", id, order.Status)
		return nil
	}
	_, err = s.repo.UpdateStatus(ctx, id, domain.OrderPaid)
	return err
}
