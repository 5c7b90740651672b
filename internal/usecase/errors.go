package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidTeamPair      = errors.New("invalid team pair")
	ErrNotConfigured        = errors.New("subscription provider not configured")
	ErrNoEmail              = errors.New("email is required")
	ErrProviderError        = errors.New("subscription provider error")
	ErrSubscriptionRequired = errors.New("active subscription required")
)
