package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/domain"
	paymentsvc "marketplace/internal/service/payment"
)

func TestWebhook_OKAndAcknowledged(t *testing.T) {
	payments := &stubPaymentService{}
	router := newTestRouter(Deps{Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"received":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if string(payments.webhookPayload) != `{"type":"payment_intent.succeeded"}` {
		t.Fatalf("raw body not forwarded: %q", payments.webhookPayload)
	}
	if payments.webhookSig != "t=1,v1=abc" {
		t.Fatalf("signature header not forwarded: %q", payments.webhookSig)
	}
}

func TestWebhook_BadSignatureMaps400(t *testing.T) {
	payments := &stubPaymentService{webhookErr: domain.Validationf("webhook signature verification failed")}
	router := newTestRouter(Deps{Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "garbage")
	rec := doRequest(router, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhook_NoAuthRequired(t *testing.T) {
	// The webhook is provider-to-server; it must not sit behind requireAuth.
	payments := &stubPaymentService{}
	router := newTestRouter(Deps{Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))
	rec := doRequest(router, req)

	if rec.Code == http.StatusUnauthorized {
		t.Fatalf("webhook must not require a bearer token")
	}
}

func TestCreateIntent_OK(t *testing.T) {
	payments := &stubPaymentService{result: &paymentsvc.IntentResult{IntentID: "pi_123", ClientSecret: "pi_123_secret"}}
	auth := authAs(domain.User{ID: "buyer-1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-intent", strings.NewReader(`{"orderId":"order-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := doRequest(router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "pi_123_secret") {
		t.Fatalf("client secret missing: %s", rec.Body.String())
	}
}

func TestCreateIntent_RequiresAuth(t *testing.T) {
	router := newTestRouter(Deps{Auth: &stubAuthService{}, Payments: &stubPaymentService{}})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-intent", strings.NewReader(`{"orderId":"order-1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateIntent_NonPendingOrderMaps400(t *testing.T) {
	payments := &stubPaymentService{err: domain.ErrInvalidOrderState}
	auth := authAs(domain.User{ID: "buyer-1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-intent", strings.NewReader(`{"orderId":"order-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := doRequest(router, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateIntent_UpstreamFailureMaps500(t *testing.T) {
	payments := &stubPaymentService{err: domain.ErrUpstream}
	auth := authAs(domain.User{ID: "buyer-1", Role: domain.RoleBuyer})
	router := newTestRouter(Deps{Auth: auth, Payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-intent", strings.NewReader(`{"orderId":"order-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := doRequest(router, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
