package httpapi

import (
	"context"
)

type contextKey string

const customerEmailContextKey contextKey = "customer_email"

func withCustomerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, customerEmailContextKey, email)
}

func customerEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(customerEmailContextKey).(string)
	return email, ok && email != ""
}
