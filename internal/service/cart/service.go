package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"marketplace/internal/domain"
)

// Service owns cart mutations. All operations are scoped to a CartOwner;
// ownership enforcement happens in the repository's SQL so a request can
// never touch another owner's items.
type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	GetByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, owner domain.CartOwner, itemID string, quantity int) error
	RemoveItem(ctx context.Context, owner domain.CartOwner, itemID string) error
	MergeGuestIntoUser(ctx context.Context, userID, guestID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// GetOrCreate resolves the owner's cart. When no owner is present at all,
// a fresh guest identifier is minted; the caller echoes it back to the
// client, which carries it in the x-guest-id header from then on.
func (s *Service) GetOrCreate(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	if owner.Zero() {
		owner = domain.GuestOwner(uuid.NewString())
	}
	return s.repo.GetOrCreate(ctx, owner)
}

// AddItem adds a product to the owner's cart. Quantity must be positive
// and the product must exist and be publicly visible. Stock is not
// checked here; checkout is the authoritative gate.
func (s *Service) AddItem(ctx context.Context, owner domain.CartOwner, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be a positive integer")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}

	cart, err := s.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.reload(ctx, cart)
}

// UpdateItemQuantity replaces an item's quantity. Zero deletes the item;
// negative values are rejected.
func (s *Service) UpdateItemQuantity(ctx context.Context, owner domain.CartOwner, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, domain.Validationf("quantity must not be negative")
	}
	if owner.Zero() {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.SetItemQuantity(ctx, owner, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByOwner(ctx, owner)
}

// RemoveItem deletes an item from the owner's cart.
func (s *Service) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID string) error {
	if owner.Zero() {
		return domain.ErrNotFound
	}
	return s.repo.RemoveItem(ctx, owner, itemID)
}

// MergeGuestCart folds a guest cart into the user's on login. A missing
// guest cart is not an error; login proceeds regardless.
func (s *Service) MergeGuestCart(ctx context.Context, userID, guestID string) error {
	if guestID == "" {
		return nil
	}
	err := s.repo.MergeGuestIntoUser(ctx, userID, guestID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) reload(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	switch {
	case cart.UserID != nil:
		return s.repo.GetByOwner(ctx, domain.UserOwner(*cart.UserID))
	case cart.GuestID != nil:
		return s.repo.GetByOwner(ctx, domain.GuestOwner(*cart.GuestID))
	}
	return cart, nil
}
