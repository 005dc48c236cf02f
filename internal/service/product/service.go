package product

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"marketplace/internal/domain"
	productrepo "marketplace/internal/repository/product"
)

// Service owns listing lifecycle: sellers create PENDING products, admins
// moderate them, and only APPROVED ones surface publicly.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries seller-editable product fields.
type Input struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"priceCents"`
	Stock       int     `json:"stock"`
	CategoryID  *string `json:"categoryId"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Validationf("title required")
	}
	if in.PriceCents <= 0 {
		return domain.Validationf("price must be positive")
	}
	if in.Stock < 0 {
		return domain.Validationf("stock must not be negative")
	}
	return nil
}

// Create inserts a new PENDING listing for the seller.
func (s *Service) Create(ctx context.Context, sellerID string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, productrepo.CreateProductInput{
		SellerID:    sellerID,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	})
}

// Update replaces seller-editable fields after an ownership check.
func (s *Service) Update(ctx context.Context, id string, actor domain.User, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProduct(actor, *existing) {
		return nil, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, productrepo.UpdateProductInput{
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	})
}

// Delete removes a listing after an ownership check.
func (s *Service) Delete(ctx context.Context, id string, actor domain.User) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanManageProduct(actor, *existing) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// PublicList returns APPROVED products only, regardless of the filter the
// caller supplies.
func (s *Service) PublicList(ctx context.Context, categoryID, search string, limit, offset int) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilter{
		Status:     domain.ProductApproved,
		CategoryID: categoryID,
		Search:     search,
		Limit:      limit,
		Offset:     offset,
	})
}

// PublicGet returns one product, hiding anything not APPROVED.
func (s *Service) PublicGet(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListMine returns all of the seller's products, any status.
func (s *Service) ListMine(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// AdminList returns products across sellers with an optional status filter.
func (s *Service) AdminList(ctx context.Context, status domain.ProductStatus, limit, offset int) ([]domain.Product, error) {
	if status != "" && !domain.ValidProductStatus(status) {
		return nil, domain.Validationf("unknown product status %q", status)
	}
	return s.repo.List(ctx, productrepo.ListFilter{Status: status, Limit: limit, Offset: offset})
}

// Moderate sets the moderation status. Admin-only; the role gate lives in
// the router, re-checked here against the actor.
func (s *Service) Moderate(ctx context.Context, id string, actor domain.User, status domain.ProductStatus) (*domain.Product, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidProductStatus(status) {
		return nil, domain.Validationf("unknown product status %q", status)
	}
	return s.repo.SetStatus(ctx, id, status)
}
