package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/domain"
)

func guestCart(guestID string) *domain.Cart {
	return &domain.Cart{ID: "cart-1", GuestID: &guestID}
}

func TestGetCart_GuestHeaderResolvesOwner(t *testing.T) {
	carts := &stubCartService{cart: guestCart("g-123")}
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: carts})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.owner.Kind != domain.OwnerGuest || carts.owner.ID != "g-123" {
		t.Fatalf("expected guest owner g-123, got %+v", carts.owner)
	}
	if !strings.Contains(rec.Body.String(), `"guestId":"g-123"`) {
		t.Fatalf("guest id not echoed: %s", rec.Body.String())
	}
}

func TestGetCart_AuthenticatedUserWinsOverGuestHeader(t *testing.T) {
	carts := &stubCartService{cart: &domain.Cart{ID: "cart-1"}}
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Carts: carts})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.owner.Kind != domain.OwnerUser || carts.owner.ID != "u1" {
		t.Fatalf("expected user owner u1, got %+v", carts.owner)
	}
}

func TestGetCart_BadTokenFallsBackToGuest(t *testing.T) {
	carts := &stubCartService{cart: guestCart("g-123")}
	auth := &stubAuthService{authErr: errForTest}
	router := newTestRouter(Deps{Auth: auth, Carts: carts})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer expired")
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	// optionalAuth never rejects; the request proceeds as guest.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.owner.Kind != domain.OwnerGuest {
		t.Fatalf("expected guest fallback, got %+v", carts.owner)
	}
}

func TestAddCartItem_Created(t *testing.T) {
	carts := &stubCartService{cart: guestCart("g-123")}
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: carts})

	body := `{"productId":"p1","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItem_MissingProductID(t *testing.T) {
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: &stubCartService{}})

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddCartItem_ValidationErrorMaps400(t *testing.T) {
	carts := &stubCartService{err: domain.Validationf("quantity must be a positive integer")}
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: carts})

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"productId":"p1","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "quantity must be a positive integer") {
		t.Fatalf("sentinel prefix should be stripped: %s", rec.Body.String())
	}
}

func TestUpdateCartItem_RequiresQuantity(t *testing.T) {
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: &stubCartService{}})

	req := httptest.NewRequest(http.MethodPut, "/cart/items/item-1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveCartItem_NoContent(t *testing.T) {
	carts := &stubCartService{}
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Carts: carts})

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/item-1", nil)
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestLogin_MergesGuestCart(t *testing.T) {
	carts := &stubCartService{}
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Carts: carts})

	body := `{"email":"a@b.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(carts.merged) != 1 || carts.merged[0] != [2]string{"u1", "g-123"} {
		t.Fatalf("expected merge of g-123 into u1, got %v", carts.merged)
	}
}

func TestLogin_MergeFailureDoesNotFailLogin(t *testing.T) {
	carts := &stubCartService{mergeErr: errForTest}
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Carts: carts})

	body := `{"email":"a@b.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-guest-id", "g-123")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login must survive a merge failure, got %d", rec.Code)
	}
}

func TestLogin_NoGuestHeaderNoMerge(t *testing.T) {
	carts := &stubCartService{}
	auth := authAs(domain.User{ID: "u1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Carts: carts})

	body := `{"email":"a@b.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(carts.merged) != 0 {
		t.Fatalf("no merge expected without guest header, got %v", carts.merged)
	}
}
