package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const customerEmailHeader = "X-Customer-Email"

// AccessChecker verifies a customer's subscription against the provider.
type AccessChecker interface {
	CheckAccess(ctx context.Context, email string) subscription.Decision
}

// RequireSubscription gates next behind an active subscription. The decision is
// computed per request and never cached.
func RequireSubscription(checker AccessChecker, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequireSubscription")
		defer span.End()

		email := customerEmail(r)
		decision := checker.CheckAccess(ctx, email)
		span.SetAttributes(
			attribute.Bool("access.granted", decision.Granted),
			attribute.String("access.reason", string(decision.Reason)),
		)
		if !decision.Granted {
			writeDenied(ctx, w, decision)
			return
		}

		next.ServeHTTP(w, r.WithContext(withCustomerEmail(ctx, strings.TrimSpace(email))))
	})
}

func customerEmail(r *http.Request) string {
	if email := strings.TrimSpace(r.Header.Get(customerEmailHeader)); email != "" {
		return email
	}
	return strings.TrimSpace(r.URL.Query().Get("email"))
}

// writeDenied differs from writeError only for a missing email, which is an
// authentication problem at the gate rather than a bad argument.
func writeDenied(ctx context.Context, w http.ResponseWriter, decision subscription.Decision) {
	err := usecase.DenialError(decision)
	mapped := mapError(ctx, err)
	if decision.Reason == subscription.ReasonNoEmail {
		mapped = mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "missingCustomerEmail",
			Status:     "UNAUTHENTICATED",
		}
	}
	writeMappedError(ctx, w, err, mapped)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.InfoContext(ctx, "http_request",
			"http_method", r.Method,
			"http_path", r.URL.Path,
			"http_status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "match-predictor-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz", "/favicon.ico":
		return false
	default:
		return true
	}
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept,"+customerEmailHeader)
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
