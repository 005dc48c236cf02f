package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
)

func buyerRouter(orders *stubOrderService) *gin.Engine {
	auth := authAs(domain.User{ID: "buyer-1", Role: domain.RoleBuyer})
	return newTestRouter(Deps{Auth: auth, Orders: orders})
}

func TestCheckout_CreatedWithoutBody(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "order-1", Status: domain.OrderPending, TotalCents: 2500}}
	router := buyerRouter(orders)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if orders.checkoutCoupon != "" {
		t.Fatalf("expected no coupon, got %q", orders.checkoutCoupon)
	}
}

func TestCheckout_ForwardsCoupon(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "order-1"}}
	router := buyerRouter(orders)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"couponCode":"SAVE10"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if orders.checkoutCoupon != "SAVE10" {
		t.Fatalf("coupon not forwarded, got %q", orders.checkoutCoupon)
	}
}

func TestCheckout_EmptyCartMaps400(t *testing.T) {
	orders := &stubOrderService{err: domain.ErrEmptyCart}
	router := buyerRouter(orders)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckout_InsufficientStockMaps409(t *testing.T) {
	orders := &stubOrderService{err: domain.ErrInsufficientStock}
	router := buyerRouter(orders)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetOrder_ForbiddenMaps403(t *testing.T) {
	orders := &stubOrderService{err: domain.ErrForbidden}
	router := buyerRouter(orders)

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus_SellerRoute(t *testing.T) {
	orders := &stubOrderService{order: &domain.Order{ID: "order-1", Status: domain.OrderShipped}}
	auth := authAs(domain.User{ID: "seller-1", Role: domain.RoleSeller})
	router := newTestRouter(Deps{Auth: auth, Orders: orders})

	req := httptest.NewRequest(http.MethodPatch, "/seller/orders/order-1/status", strings.NewReader(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if orders.statusArg != domain.OrderShipped {
		t.Fatalf("expected SHIPPED forwarded, got %s", orders.statusArg)
	}
}

func TestUpdateOrderStatus_IllegalTransitionMaps400(t *testing.T) {
	orders := &stubOrderService{err: domain.ErrInvalidOrderState}
	auth := authAs(domain.User{ID: "admin", Role: domain.RoleAdmin})
	router := newTestRouter(Deps{Auth: auth, Orders: orders})

	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/order-1/status", strings.NewReader(`{"status":"COMPLETED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus_MissingStatus(t *testing.T) {
	auth := authAs(domain.User{ID: "admin", Role: domain.RoleAdmin})
	router := newTestRouter(Deps{Auth: auth, Orders: &stubOrderService{}})

	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/order-1/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
