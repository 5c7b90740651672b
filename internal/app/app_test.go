package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		CatalogSource:      config.CatalogSourceFile,
		CatalogPath:        "../../data/teams.json",
		PredictionModel:    config.PredictionModelAuto,
		BoardWorkers:       2,
		UIDefaultLocale:    "cs",
		Stripe:             config.StripeConfig{BaseURL: "https://api.stripe.com", PriceLabel: "399 Kč / měsíc"},
	}
}

func TestNewHTTPServer_FileCatalog(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Premier League") {
		t.Fatalf("expected bundled leagues in response: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/predictions?league=Premier%20League&home=Arsenal&away=Chelsea", nil)
	req.Header.Set("X-Customer-Email", "jan.novak@email.cz")
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without stripe credentials, got %d", rec.Code)
	}
}

func TestNewHTTPServer_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}

	cfg = testConfig()
	cfg.CatalogPath = "does-not-exist.json"
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing catalog file")
	}
}
