package review

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/domain"
	reviewrepo "marketplace/internal/repository/review"
)

type memoryReviewRepo struct {
	reviews   map[string]domain.Review // key: userID + "/" + productID
	purchased map[string]bool
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{
		reviews:   make(map[string]domain.Review),
		purchased: make(map[string]bool),
	}
}

func reviewKey(userID, productID string) string { return userID + "/" + productID }

func (r *memoryReviewRepo) Upsert(_ context.Context, in reviewrepo.UpsertReviewInput) (*domain.Review, bool, error) {
	key := reviewKey(in.UserID, in.ProductID)
	_, existed := r.reviews[key]
	rev := domain.Review{
		ID:        key,
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	r.reviews[key] = rev
	clone := rev
	return &clone, !existed, nil
}

func (r *memoryReviewRepo) ListByProduct(_ context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *memoryReviewRepo) HasPurchased(_ context.Context, userID, productID string) (bool, error) {
	return r.purchased[reviewKey(userID, productID)], nil
}

type stubProductRepo struct {
	products map[string]domain.Product
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		clone := p
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func newTestService() (*Service, *memoryReviewRepo) {
	repo := newMemoryReviewRepo()
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Status: domain.ProductApproved},
	}}
	return New(repo, products), repo
}

func TestSubmit_RequiresPurchase(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Submit(ctx, "u1", "p1", Input{Rating: 5}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden without purchase, got %v", err)
	}

	repo.purchased[reviewKey("u1", "p1")] = true
	rev, created, err := svc.Submit(ctx, "u1", "p1", Input{Rating: 5, Comment: "  great  "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !created {
		t.Fatal("first submit should create")
	}
	if rev.Comment != "great" {
		t.Fatalf("expected trimmed comment, got %q", rev.Comment)
	}
}

func TestSubmit_SecondSubmitUpdates(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.purchased[reviewKey("u1", "p1")] = true

	if _, _, err := svc.Submit(ctx, "u1", "p1", Input{Rating: 3}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	rev, created, err := svc.Submit(ctx, "u1", "p1", Input{Rating: 5})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if created {
		t.Fatal("second submit should update, not create")
	}
	if rev.Rating != 5 {
		t.Fatalf("expected rating replaced, got %d", rev.Rating)
	}
	if got, _ := repo.ListByProduct(ctx, "p1"); len(got) != 1 {
		t.Fatalf("expected a single review per user and product, got %d", len(got))
	}
}

func TestSubmit_RatingBounds(t *testing.T) {
	svc, repo := newTestService()
	repo.purchased[reviewKey("u1", "p1")] = true

	for _, rating := range []int{0, -1, 6} {
		if _, _, err := svc.Submit(context.Background(), "u1", "p1", Input{Rating: rating}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestSubmit_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.Submit(context.Background(), "u1", "missing", Input{Rating: 4}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductReviews_Average(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.purchased[reviewKey("u1", "p1")] = true
	repo.purchased[reviewKey("u2", "p1")] = true

	if _, _, err := svc.Submit(ctx, "u1", "p1", Input{Rating: 4}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := svc.Submit(ctx, "u2", "p1", Input{Rating: 5}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviews, avg, err := svc.ProductReviews(ctx, "p1")
	if err != nil {
		t.Fatalf("product reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if avg != 4.5 {
		t.Fatalf("expected average 4.5, got %v", avg)
	}
}

func TestProductReviews_EmptyAverageIsZero(t *testing.T) {
	svc, _ := newTestService()

	reviews, avg, err := svc.ProductReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("product reviews: %v", err)
	}
	if len(reviews) != 0 || avg != 0 {
		t.Fatalf("expected empty list and zero average, got %d/%v", len(reviews), avg)
	}
}
