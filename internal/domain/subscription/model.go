package subscription

import "strings"

// Status is a subscription status string as reported by the provider.
type Status string

const (
	StatusActive     Status = "active"
	StatusTrialing   Status = "trialing"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusIncomplete Status = "incomplete"
	StatusUnpaid     Status = "unpaid"
)

// Grants reports whether the status unlocks paid content.
func (s Status) Grants() bool {
	switch Status(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusActive, StatusTrialing:
		return true
	default:
		return false
	}
}

// AnyGrants reports whether at least one status unlocks paid content.
func AnyGrants(statuses []Status) bool {
	for _, s := range statuses {
		if s.Grants() {
			return true
		}
	}
	return false
}

// DenyReason explains a denied decision. ReasonNone on a denied decision means
// the lookup succeeded and no subscription is active.
type DenyReason string

const (
	ReasonNone          DenyReason = ""
	ReasonNotConfigured DenyReason = "NOT_CONFIGURED"
	ReasonNoEmail       DenyReason = "NO_EMAIL"
	ReasonProviderError DenyReason = "PROVIDER_ERROR"
)

// Decision is the result of one access check. It is never stored.
type Decision struct {
	Granted           bool
	Reason            DenyReason
	Detail            string
	ActivationPending bool
}

func Grant() Decision {
	return Decision{Granted: true}
}

func Deny(reason DenyReason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

// CheckoutRequest describes a subscription checkout for one customer.
type CheckoutRequest struct {
	Email          string
	PriceID        string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// CheckoutSession is the hosted checkout page created by the provider.
type CheckoutSession struct {
	ID  string
	URL string
}
