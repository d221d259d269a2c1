package billing

import (
	"context"
	"fmt"

	"maidlink/pkg/types"

	"github.com/stripe/stripe-go/v84"
)

// Stripe provisions the hosted billing objects backing an agency's
// subscription.
type Stripe struct {
	client *stripe.Client
	config *types.Config
}

func New(config *types.Config) *Stripe {
	return &Stripe{
		client: stripe.NewClient(config.StripeSecretKey),
		config: config,
	}
}

// Subscribe creates a customer and a trialing subscription for the agency
// and returns both IDs.
func (b *Stripe) Subscribe(ctx context.Context, agency *types.Agency) (customerID, subscriptionID string, err error) {
	customer, err := b.client.V1Customers.Create(ctx, &stripe.CustomerCreateParams{
		Email: stripe.String(agency.Email),
		Name:  stripe.String(agency.Name),
		Metadata: map[string]string{
			"agency_id":  agency.ID,
			"license_no": agency.LicenseNo,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create stripe customer: %w", err)
	}

	subscription, err := b.client.V1Subscriptions.Create(ctx, &stripe.SubscriptionCreateParams{
		Customer: stripe.String(customer.ID),
		Items: []*stripe.SubscriptionCreateItemParams{
			{Price: stripe.String(b.config.StripeSubscriptionPrice)},
		},
		TrialPeriodDays: stripe.Int64(b.config.StripeTrialPeriodDays),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create stripe subscription: %w", err)
	}

	return customer.ID, subscription.ID, nil
}

// CancelSubscription ends the agency's subscription immediately.
func (b *Stripe) CancelSubscription(ctx context.Context, subscriptionID string) error {
	_, err := b.client.V1Subscriptions.Cancel(ctx, subscriptionID, nil)
	if err != nil {
		return fmt.Errorf("failed to cancel stripe subscription: %w", err)
	}

	return nil
}
