package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/stripe/stripe-go/v79"

	"marketplace/internal/domain"
)

const orderIDMetadataKey = "order_id"

// Service adapts orders to the payment processor: it creates payment
// intents for pending orders and reconciles webhook events back to order
// status. All cryptographic work (webhook signatures) is delegated to the
// processor SDK via the gateway.
type Service struct {
	gateway   Gateway
	orderRepo orderRepo
	orders    orderStatus
	logger    *log.Logger
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetPaymentIntent(ctx context.Context, id, intentID string) error
}

type orderStatus interface {
	MarkPaid(ctx context.Context, id string) error
}

func New(gateway Gateway, repo orderRepo, orders orderStatus, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{gateway: gateway, orderRepo: repo, orders: orders, logger: logger}
}

// IntentResult is what the client needs to complete payment browser-side.
type IntentResult struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent creates a payment intent for the order's total. The order
// must belong to the user and still be PENDING. The order id rides along
// as intent metadata so the webhook can find its way back.
func (s *Service) CreateIntent(ctx context.Context, orderID, userID string) (*IntentResult, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.OrderPending {
		return nil, domain.ErrInvalidOrderState
	}

	intentID, clientSecret, err := s.gateway.CreateIntent(ctx, order.TotalCents, map[string]string{orderIDMetadataKey: order.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if err := s.orderRepo.SetPaymentIntent(ctx, order.ID, intentID); err != nil {
		return nil, err
	}
	return &IntentResult{IntentID: intentID, ClientSecret: clientSecret}, nil
}

// HandleWebhook verifies and applies one provider event. A signature
// failure returns an error (the caller answers 400 and the provider
// retries). Database failures after successful verification are logged
// and swallowed so an already-verified event is not retried forever;
// the PENDING→PAID transition is idempotent under replay.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return domain.Validationf("webhook signature verification failed")
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			s.logger.Printf("payment: malformed payment_intent payload: %v", err)
			return nil
		}
		orderID := intent.Metadata[orderIDMetadataKey]
		if orderID == "" {
			s.logger.Printf("payment: succeeded event %s without order metadata", event.ID)
			return nil
		}
		if err := s.orders.MarkPaid(ctx, orderID); err != nil {
			s.logger.Printf("payment: mark paid order=%s failed: %v", orderID, err)
		}
	default:
		// Unknown event types are acknowledged without side effects.
	}
	return nil
}
