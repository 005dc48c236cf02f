package payment

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Gateway abstracts the processor SDK so tests can substitute it.
type Gateway interface {
	// CreateIntent opens a charge attempt for the amount in minor units
	// and returns the intent id and client-usable secret.
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (intentID, clientSecret string, err error)
	// VerifyWebhook checks the provider signature over the raw body and
	// decodes the event. Verification lives entirely in the SDK.
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

type stripeGateway struct {
	webhookSecret string
	currency      string
}

// NewStripeGateway configures the global stripe client key and returns a
// Gateway backed by the Stripe SDK.
func NewStripeGateway(secretKey, webhookSecret string) Gateway {
	stripe.Key = secretKey
	return &stripeGateway{webhookSecret: webhookSecret, currency: string(stripe.CurrencyUSD)}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", err
	}
	return intent.ID, intent.ClientSecret, nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
}
