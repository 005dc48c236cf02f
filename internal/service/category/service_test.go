package category

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"marketplace/internal/domain"
	categoryrepo "marketplace/internal/repository/category"
)

type memoryCategoryRepo struct {
	categories map[string]domain.Category
	nextID     int
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: make(map[string]domain.Category)}
}

func (r *memoryCategoryRepo) Create(_ context.Context, in categoryrepo.CreateCategoryInput) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == in.Slug {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	c := domain.Category{
		ID:       fmt.Sprintf("cat-%d", r.nextID),
		Name:     in.Name,
		Slug:     in.Slug,
		ParentID: in.ParentID,
	}
	r.categories[c.ID] = c
	clone := c
	return &clone, nil
}

func (r *memoryCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	if c, ok := r.categories[id]; ok {
		clone := c
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var result []domain.Category
	for _, c := range r.categories {
		result = append(result, c)
	}
	return result, nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, id string, in categoryrepo.CreateCategoryInput) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Slug = in.Slug
	c.ParentID = in.ParentID
	r.categories[id] = c
	clone := c
	return &clone, nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func TestCreateSlugifiesName(t *testing.T) {
	svc := New(newMemoryCategoryRepo())

	c, err := svc.Create(context.Background(), Input{Name: "  Kitchen Tools "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Kitchen Tools" {
		t.Errorf("expected trimmed name, got %q", c.Name)
	}
	if c.Slug != "kitchen-tools" {
		t.Errorf("expected slug kitchen-tools, got %q", c.Slug)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := New(newMemoryCategoryRepo())

	if _, err := svc.Create(context.Background(), Input{Name: "   "}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateRequiresExistingParent(t *testing.T) {
	repo := newMemoryCategoryRepo()
	svc := New(repo)

	missing := "cat-nope"
	if _, err := svc.Create(context.Background(), Input{Name: "Shoes", ParentID: &missing}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for missing parent, got %v", err)
	}

	parent, err := svc.Create(context.Background(), Input{Name: "Apparel"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := svc.Create(context.Background(), Input{Name: "Shoes", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("expected child parented under %s, got %v", parent.ID, child.ParentID)
	}
}

func TestUpdateRejectsSelfParent(t *testing.T) {
	svc := New(newMemoryCategoryRepo())

	c, err := svc.Create(context.Background(), Input{Name: "Apparel"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(context.Background(), c.ID, Input{Name: "Apparel", ParentID: &c.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for self parent, got %v", err)
	}
}

func TestUpdateReslugs(t *testing.T) {
	svc := New(newMemoryCategoryRepo())

	c, err := svc.Create(context.Background(), Input{Name: "Apparel"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(context.Background(), c.ID, Input{Name: "Outdoor Gear"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "outdoor-gear" {
		t.Errorf("expected reslugged category, got %q", updated.Slug)
	}
}

func TestTreeNestsChildren(t *testing.T) {
	svc := New(newMemoryCategoryRepo())

	root, err := svc.Create(context.Background(), Input{Name: "Apparel"})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := svc.Create(context.Background(), Input{Name: "Shoes", ParentID: &root.ID}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	tree, err := svc.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "Shoes" {
		t.Errorf("expected Shoes nested under %s, got %+v", root.Name, tree[0].Children)
	}
}
