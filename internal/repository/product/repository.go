package product

import (
	"context"

	"marketplace/internal/domain"
)

type CreateProductInput struct {
	SellerID    string
	CategoryID  *string
	Title       string
	Slug        string
	Description string
	PriceCents  int64
	Stock       int
}

type UpdateProductInput struct {
	CategoryID  *string
	Title       string
	Slug        string
	Description string
	PriceCents  int64
	Stock       int
}

// ListFilter narrows public and admin listings. Status is empty for
// admin "any status" listings.
type ListFilter struct {
	Status     domain.ProductStatus
	CategoryID string
	Search     string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	SetStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
