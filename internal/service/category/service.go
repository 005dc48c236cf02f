package category

import (
	"context"
	"strings"

	"github.com/gosimple/slug"

	"marketplace/internal/domain"
	categoryrepo "marketplace/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Tree returns the full nested category tree.
func (s *Service) Tree(ctx context.Context) ([]*domain.CategoryNode, error) {
	flat, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildCategoryTree(flat), nil
}

type Input struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name required")
	}
	if in.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}
	return s.repo.Create(ctx, categoryrepo.CreateCategoryInput{
		Name:     name,
		Slug:     slug.Make(name),
		ParentID: in.ParentID,
	})
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name required")
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, domain.Validationf("category cannot be its own parent")
		}
		if _, err := s.repo.GetByID(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, categoryrepo.CreateCategoryInput{
		Name:     name,
		Slug:     slug.Make(name),
		ParentID: in.ParentID,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
