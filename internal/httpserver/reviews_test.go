package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/domain"
)

func TestListReviews_PublicWithAverage(t *testing.T) {
	reviews := &stubReviewService{
		list: []domain.Review{
			{ID: "r1", ProductID: "p1", Rating: 4},
			{ID: "r2", ProductID: "p1", Rating: 5},
		},
		average: 4.5,
	}
	router := newTestRouter(Deps{Reviews: reviews})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/products/p1/reviews", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"averageRating":4.5`) {
		t.Fatalf("average missing: %s", rec.Body.String())
	}
}

func TestSubmitReview_RequiresAuth(t *testing.T) {
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Reviews: &stubReviewService{}})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSubmitReview_CreatedVsUpdated(t *testing.T) {
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	reviews := &stubReviewService{review: &domain.Review{ID: "r1", Rating: 5}, created: true}
	router := newTestRouter(Deps{Auth: auth, Reviews: reviews})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := doRequest(router, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d", rec.Code)
	}

	reviews.created = false
	req = httptest.NewRequest(http.MethodPost, "/products/p1/reviews", strings.NewReader(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec = doRequest(router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", rec.Code)
	}
}

func TestSubmitReview_UnverifiedPurchaseMaps403(t *testing.T) {
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	reviews := &stubReviewService{err: domain.ErrForbidden}
	router := newTestRouter(Deps{Auth: auth, Reviews: reviews})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := doRequest(router, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
