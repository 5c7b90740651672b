package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/id"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	customerLookupLimit     = 3
	subscriptionLookupLimit = 5
)

const (
	detailNotConfigured     = "subscription checkout is not configured: set STRIPE_SECRET_KEY and STRIPE_PRICE_ID"
	detailNoEmail           = "enter the email used for the subscription"
	detailNoSubscription    = "no active subscription for this email"
	detailActivationPending = "payment received, subscription activation may take a few seconds"
)

type AccessConfig struct {
	// Configured is false when the secret key or the price id is missing.
	Configured bool
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// AccessService decides whether an email may see paid content. Every call asks
// the provider again; no decision is remembered between calls.
type AccessService struct {
	provider subscription.Provider
	ids      id.Generator
	cfg      AccessConfig
	validate *validator.Validate
	logger   *logging.Logger
}

func NewAccessService(
	provider subscription.Provider,
	ids id.Generator,
	cfg AccessConfig,
	logger *logging.Logger,
) *AccessService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &AccessService{
		provider: provider,
		ids:      ids,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// CheckAccess runs the email check, then the configuration check, then one
// provider lookup.
func (s *AccessService) CheckAccess(ctx context.Context, email string) subscription.Decision {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccessService.CheckAccess")
	defer span.End()

	email, err := s.normalizeEmail(email)
	if err != nil {
		return subscription.Deny(subscription.ReasonNoEmail, emailDetail(err))
	}
	if !s.configured() {
		return subscription.Deny(subscription.ReasonNotConfigured, detailNotConfigured)
	}

	granted, err := s.hasActiveSubscription(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "subscription lookup failed")
		s.logger.WarnContext(ctx, "subscription lookup failed", "email", logging.MaskEmail(email), "error", err)
		return subscription.Deny(subscription.ReasonProviderError, err.Error())
	}
	span.SetAttributes(attribute.Bool("access.granted", granted))
	if !granted {
		return subscription.Deny(subscription.ReasonNone, detailNoSubscription)
	}

	return subscription.Grant()
}

// ConfirmCheckoutReturn re-checks once after the provider redirects back. A
// clean miss is reported as pending activation rather than polled.
func (s *AccessService) ConfirmCheckoutReturn(ctx context.Context, email string) subscription.Decision {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccessService.ConfirmCheckoutReturn")
	defer span.End()

	decision := s.CheckAccess(ctx, email)
	if !decision.Granted && decision.Reason == subscription.ReasonNone {
		decision.ActivationPending = true
		decision.Detail = detailActivationPending
	}

	return decision
}

// StartCheckout creates a hosted subscription checkout for email. It makes a
// single attempt.
func (s *AccessService) StartCheckout(ctx context.Context, email string) (subscription.CheckoutSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccessService.StartCheckout")
	defer span.End()

	if !s.configured() {
		return subscription.CheckoutSession{}, fmt.Errorf("%w: %s", ErrNotConfigured, detailNotConfigured)
	}
	email, err := s.normalizeEmail(email)
	if err != nil {
		return subscription.CheckoutSession{}, fmt.Errorf("%w: %s", ErrNoEmail, emailDetail(err))
	}

	key, err := s.ids.NewID()
	if err != nil {
		return subscription.CheckoutSession{}, fmt.Errorf("generate idempotency key: %w", err)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, subscription.CheckoutRequest{
		Email:          email,
		PriceID:        s.cfg.PriceID,
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
		IdempotencyKey: key,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create checkout session failed")
		s.logger.WarnContext(ctx, "create checkout session failed", "email", logging.MaskEmail(email), "error", err)
		return subscription.CheckoutSession{}, fmt.Errorf("%w: %w", ErrProviderError, err)
	}
	if strings.TrimSpace(session.URL) == "" {
		return subscription.CheckoutSession{}, fmt.Errorf("%w: checkout session %s has no url", ErrProviderError, session.ID)
	}

	s.logger.InfoContext(ctx, "checkout session created", "session_id", session.ID, "email", logging.MaskEmail(email))
	return session, nil
}

func (s *AccessService) configured() bool {
	return s.cfg.Configured && s.provider != nil
}

func (s *AccessService) hasActiveSubscription(ctx context.Context, email string) (bool, error) {
	customerIDs, err := s.provider.ListCustomerIDs(ctx, email, customerLookupLimit)
	if err != nil {
		return false, fmt.Errorf("list customers: %w", err)
	}

	for _, customerID := range customerIDs {
		statuses, err := s.provider.ListSubscriptionStatuses(ctx, customerID, subscriptionLookupLimit)
		if err != nil {
			return false, fmt.Errorf("list subscriptions customer=%s: %w", customerID, err)
		}
		if subscription.AnyGrants(statuses) {
			return true, nil
		}
	}

	return false, nil
}

var errMalformedEmail = errors.New("malformed email")

func (s *AccessService) normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrNoEmail
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return "", errMalformedEmail
	}
	return email, nil
}

func emailDetail(err error) string {
	if errors.Is(err, errMalformedEmail) {
		return "email address is not valid"
	}
	return detailNoEmail
}

// DenialError maps a denied decision to the matching sentinel error. It
// returns nil for a granted decision.
func DenialError(d subscription.Decision) error {
	if d.Granted {
		return nil
	}

	var sentinel error
	switch d.Reason {
	case subscription.ReasonNoEmail:
		sentinel = ErrNoEmail
	case subscription.ReasonNotConfigured:
		sentinel = ErrNotConfigured
	case subscription.ReasonProviderError:
		sentinel = ErrProviderError
	default:
		sentinel = ErrSubscriptionRequired
	}
	if d.Detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, d.Detail)
}
