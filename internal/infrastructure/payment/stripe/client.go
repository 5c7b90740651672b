package stripe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	requestTimeout = 20 * time.Second
	maxBodyBytes   = 1 << 20
)

var secretKeyRegex = regexp.MustCompile(`(sk|rk)_(test|live)_[A-Za-z0-9]+`)

// ErrInvalidAPIKey marks a 401 from the provider.
var ErrInvalidAPIKey = crerr.New("stripe rejected the api key")

type ClientConfig struct {
	// HTTPClient is replaced in tests. Its timeout is forced to the fixed
	// request timeout when unset.
	HTTPClient *http.Client
	BaseURL    string
	SecretKey  string
	Logger     *logging.Logger
}

// Client talks to the three Stripe endpoints the access gate needs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *logging.Logger
}

var _ subscription.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = requestTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		secretKey:  strings.TrimSpace(cfg.SecretKey),
		logger:     logger,
	}
}

func (c *Client) ListCustomerIDs(ctx context.Context, email string, limit int) ([]string, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("limit", strconv.Itoa(limit))

	var decoded listEnvelope[customerObject]
	if err := c.doJSON(ctx, http.MethodGet, "/v1/customers", query, nil, "", &decoded); err != nil {
		return nil, crerr.Wrap(err, "list customers")
	}

	out := make([]string, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		if id := strings.TrimSpace(item.ID); id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

func (c *Client) ListSubscriptionStatuses(ctx context.Context, customerID string, limit int) ([]subscription.Status, error) {
	query := url.Values{}
	query.Set("customer", customerID)
	query.Set("status", "all")
	query.Set("limit", strconv.Itoa(limit))

	var decoded listEnvelope[subscriptionObject]
	if err := c.doJSON(ctx, http.MethodGet, "/v1/subscriptions", query, nil, "", &decoded); err != nil {
		return nil, crerr.Wrapf(err, "list subscriptions customer=%s", customerID)
	}

	out := make([]subscription.Status, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		out = append(out, subscription.Status(item.Status))
	}
	return out, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req subscription.CheckoutRequest) (subscription.CheckoutSession, error) {
	form := checkoutForm(req)

	var decoded checkoutSessionObject
	if err := c.doJSON(ctx, http.MethodPost, "/v1/checkout/sessions", nil, form, req.IdempotencyKey, &decoded); err != nil {
		return subscription.CheckoutSession{}, crerr.Wrap(err, "create checkout session")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return subscription.CheckoutSession{}, crerr.New("create checkout session: response has no id")
	}

	return subscription.CheckoutSession{ID: decoded.ID, URL: decoded.URL}, nil
}

func checkoutForm(req subscription.CheckoutRequest) url.Values {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", req.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", req.Email)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("allow_promotion_codes", "true")
	return form
}

func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	query, form url.Values,
	idempotencyKey string,
	target any,
) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Newf("send request: %s", c.sanitize(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return crerr.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.statusError(resp.StatusCode, raw)
		c.logger.WarnContext(ctx, "stripe request failed",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode,
			"error", apiErr,
		)
		return apiErr
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) statusError(status int, raw []byte) error {
	message := abbreviateBody(raw)
	var decoded errorEnvelope
	if err := sonic.Unmarshal(raw, &decoded); err == nil && strings.TrimSpace(decoded.Error.Message) != "" {
		message = decoded.Error.Message
	}
	message = c.sanitize(message)

	if status == http.StatusUnauthorized {
		return crerr.Mark(
			crerr.Newf("stripe status=%d: %s (check STRIPE_SECRET_KEY; test mode keys only work against test prices)", status, message),
			ErrInvalidAPIKey,
		)
	}
	return crerr.Newf("stripe status=%d: %s", status, message)
}

// sanitize removes the configured key and anything shaped like a secret key.
func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if c.secretKey != "" {
		value = strings.ReplaceAll(value, c.secretKey, "REDACTED")
	}
	return secretKeyRegex.ReplaceAllString(value, "${1}_${2}_REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type listEnvelope[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
}

type customerObject struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type subscriptionObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type checkoutSessionObject struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
