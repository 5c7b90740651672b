package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_PRICE_ID", "")
	t.Setenv("PUBLIC_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.HTTPAddr)
	}
	if cfg.CatalogSource != CatalogSourceFile || cfg.CatalogPath != "data/teams.json" {
		t.Fatalf("unexpected catalog defaults: %s %s", cfg.CatalogSource, cfg.CatalogPath)
	}
	if cfg.PredictionModel != PredictionModelAuto {
		t.Fatalf("unexpected prediction model: %s", cfg.PredictionModel)
	}
	if cfg.BoardWorkers != 4 {
		t.Fatalf("unexpected board workers: %d", cfg.BoardWorkers)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
	if cfg.Stripe.Configured() {
		t.Fatalf("expected stripe to be unconfigured without credentials")
	}
	if cfg.Stripe.SuccessURL() != "https://example.com?success=1" {
		t.Fatalf("unexpected success url: %s", cfg.Stripe.SuccessURL())
	}
	if cfg.Stripe.CancelURL() != "https://example.com?canceled=1" {
		t.Fatalf("unexpected cancel url: %s", cfg.Stripe.CancelURL())
	}
	if cfg.UIDefaultLocale != "cs" {
		t.Fatalf("unexpected default locale: %s", cfg.UIDefaultLocale)
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "10000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":10000" {
		t.Fatalf("expected PORT fallback, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_StripeSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STRIPE_SECRET_KEY", " sk_test_123 ")
	t.Setenv("STRIPE_PRICE_ID", "price_abc")
	t.Setenv("PUBLIC_URL", "https://fotbal-predikce.onrender.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Stripe.Configured() {
		t.Fatalf("expected stripe configured")
	}
	if cfg.Stripe.SecretKey != "sk_test_123" {
		t.Fatalf("expected trimmed secret key")
	}
	if got := cfg.Stripe.SuccessURL(); got != "https://fotbal-predikce.onrender.com?success=1" {
		t.Fatalf("unexpected success url: %s", got)
	}
}

func TestLoad_InvalidPublicURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PUBLIC_URL", "fotbal-predikce.onrender.com")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for relative PUBLIC_URL")
	}
}

func TestLoad_CatalogSourceValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "s3")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown CATALOG_SOURCE")
		}
	})

	t.Run("postgres requires db url", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "postgres")
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when CATALOG_SOURCE=postgres without DB_URL")
		}
	})

	t.Run("postgres with db url", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "Postgres")
		t.Setenv("DB_URL", "postgres://localhost:5432/predictor?sslmode=disable")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CatalogSource != CatalogSourcePostgres {
			t.Fatalf("unexpected catalog source: %s", cfg.CatalogSource)
		}
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"PREDICTION_MODEL":  "poisson",
		"BOARD_WORKERS":     "0",
		"UI_DEFAULT_LOCALE": "de",
		"APP_READ_TIMEOUT":  "soon",
		"PPROF_ENABLED":     "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ObservabilityRequirements(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("uptrace requires dsn", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "true")
		t.Setenv("UPTRACE_DSN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
		}
	})

	t.Run("pyroscope app name defaults to service name", func(t *testing.T) {
		t.Setenv("APP_SERVICE_NAME", "predictor-test")
		t.Setenv("PYROSCOPE_ENABLED", "true")
		t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
		t.Setenv("PYROSCOPE_APP_NAME", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PyroscopeAppName != "predictor-test" {
			t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
		}
	})
}
