package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessChecker struct {
	decision subscription.Decision
	emails   []string
}

func (f *fakeAccessChecker) CheckAccess(_ context.Context, email string) subscription.Decision {
	f.emails = append(f.emails, email)
	return f.decision
}

func TestRequireSubscription_DenialStatuses(t *testing.T) {
	tests := []struct {
		name           string
		decision       subscription.Decision
		wantStatus     int
		wantStatusText string
	}{
		{
			name:           "missing email",
			decision:       subscription.Deny(subscription.ReasonNoEmail, "email is required"),
			wantStatus:     http.StatusUnauthorized,
			wantStatusText: "UNAUTHENTICATED",
		},
		{
			name:           "no subscription",
			decision:       subscription.Deny(subscription.ReasonNone, "no active subscription for this email"),
			wantStatus:     http.StatusPaymentRequired,
			wantStatusText: "PAYMENT_REQUIRED",
		},
		{
			name:           "not configured",
			decision:       subscription.Deny(subscription.ReasonNotConfigured, "stripe is not configured"),
			wantStatus:     http.StatusServiceUnavailable,
			wantStatusText: "UNAVAILABLE",
		},
		{
			name:           "provider error",
			decision:       subscription.Deny(subscription.ReasonProviderError, "stripe: 500"),
			wantStatus:     http.StatusServiceUnavailable,
			wantStatusText: "UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeAccessChecker{decision: tt.decision}
			nextCalled := false
			handler := RequireSubscription(checker, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/predictions", nil)
			req.Header.Set(customerEmailHeader, "jan.novak@email.cz")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.False(t, nextCalled)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body googleResponseEnvelope
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantStatusText, body.Error.Status)
		})
	}
}

func TestRequireSubscription_ReverifiesEveryRequest(t *testing.T) {
	checker := &fakeAccessChecker{decision: subscription.Grant()}
	var seen []string
	handler := RequireSubscription(checker, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _ := customerEmailFromContext(r.Context())
		seen = append(seen, email)
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/predictions?email=jan.novak@email.cz", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, checker.emails, 3)
	assert.Equal(t, []string{"jan.novak@email.cz", "jan.novak@email.cz", "jan.novak@email.cz"}, seen)
}

func TestCustomerEmail_HeaderWinsOverQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/predictions?email=query@example.com", nil)
	req.Header.Set(customerEmailHeader, " header@example.com ")

	assert.Equal(t, "header@example.com", customerEmail(req))
}
