package review

import (
	"context"
	"strings"

	"marketplace/internal/domain"
	reviewrepo "marketplace/internal/repository/review"
)

// Service gates reviews on a verified purchase and enforces one review
// per (user, product) with upsert semantics.
type Service struct {
	repo        reviewrepo.Repository
	productRepo productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo reviewrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, productRepo: products}
}

type Input struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit creates or updates the user's review of a product. The second
// return reports whether a new review was created (201) versus an
// existing one updated (200).
func (s *Service) Submit(ctx context.Context, userID, productID string, in Input) (*domain.Review, bool, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, false, domain.Validationf("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, false, err
	}

	purchased, err := s.repo.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, false, err
	}
	if !purchased {
		return nil, false, domain.ErrForbidden
	}

	return s.repo.Upsert(ctx, reviewrepo.UpsertReviewInput{
		UserID:    userID,
		ProductID: productID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
}

// ProductReviews lists a product's reviews with the average rating.
func (s *Service) ProductReviews(ctx context.Context, productID string) ([]domain.Review, float64, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if len(reviews) == 0 {
		return reviews, 0, nil
	}
	var sum int
	for _, rev := range reviews {
		sum += rev.Rating
	}
	return reviews, float64(sum) / float64(len(reviews)), nil
}
