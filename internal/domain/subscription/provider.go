package subscription

import "context"

// Provider is the narrow slice of the payment provider API the access gate uses.
type Provider interface {
	ListCustomerIDs(ctx context.Context, email string, limit int) ([]string, error)
	ListSubscriptionStatuses(ctx context.Context, customerID string, limit int) ([]Status, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}
