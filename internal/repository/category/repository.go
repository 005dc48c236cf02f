package category

import (
	"context"

	"marketplace/internal/domain"
)

type CreateCategoryInput struct {
	Name     string
	Slug     string
	ParentID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, in CreateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
