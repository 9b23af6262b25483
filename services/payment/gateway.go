package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"flupp/config"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrGatewayTimeout marks an outbound processor call that exceeded its
// deadline. Handlers translate it into a 502 dependency_timeout.
var ErrGatewayTimeout = errors.New("payment gateway timed out")

// Intent is the subset of the processor's payment-intent state the
// booking core cares about.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Terminal intent statuses as reported by the processor.
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusCanceled  = "canceled"
)

// IntentRequest carries everything needed to open a charge attempt.
type IntentRequest struct {
	AmountCents   int64
	Currency      string
	BookingID     string
	CustomerEmail string
}

// Gateway abstracts the external payment processor so the service can be
// tested against a fake.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

// stripeGateway implements Gateway against the Stripe API. Every call is
// bounded by a timeout so a slow processor cannot hang a request.
type stripeGateway struct {
	api     *client.API
	timeout time.Duration
}

// NewStripeGateway builds a Gateway using the configured Stripe secret key.
func NewStripeGateway() Gateway {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	backends := stripe.NewBackends(httpClient)
	return &stripeGateway{
		api:     client.New(config.AppConfig.StripeKey, backends),
		timeout: 10 * time.Second,
	}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("customerEmail", req.CustomerEmail)
	params.AddMetadata("environment", config.GetEnv())

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, mapGatewayError(err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g *stripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, mapGatewayError(err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func mapGatewayError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrGatewayTimeout
	}
	return err
}
