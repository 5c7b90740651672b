package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/infrastructure/payment/stripe"
	"github.com/riskibarqy/match-predictor/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-predictor/internal/platform/id"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

// NewHTTPServer wires the catalog, the subscription provider and the HTTP
// surface. cleanup must be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	catalog, cleanup, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load team catalog: %w", err)
	}

	stripeClient := stripe.NewClient(stripe.ClientConfig{
		BaseURL:   cfg.Stripe.BaseURL,
		SecretKey: cfg.Stripe.SecretKey,
		Logger:    logger.Named("stripe"),
	})
	if !cfg.Stripe.Configured() {
		logger.WarnContext(ctx, "stripe is not configured, paid content stays locked",
			"has_secret_key", cfg.Stripe.SecretKey != "",
			"has_price_id", cfg.Stripe.PriceID != "",
		)
	}

	accessSvc := usecase.NewAccessService(stripeClient, id.NewUUIDGenerator(), usecase.AccessConfig{
		Configured: cfg.Stripe.Configured(),
		PriceID:    cfg.Stripe.PriceID,
		SuccessURL: cfg.Stripe.SuccessURL(),
		CancelURL:  cfg.Stripe.CancelURL(),
	}, logger)
	predictionSvc := usecase.NewPredictionService(catalog, usecase.PredictionConfig{
		ForceNameHash: cfg.PredictionModel == config.PredictionModelNameHash,
		BoardWorkers:  cfg.BoardWorkers,
	})

	page, err := httpapi.NewPage(predictionSvc, accessSvc, httpapi.PageConfig{
		DefaultLocale: cfg.UIDefaultLocale,
		PriceLabel:    cfg.Stripe.PriceLabel,
		SecureCookies: cfg.AppEnv == config.EnvProd,
	}, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("build page: %w", err)
	}

	handler := httpapi.NewHandler(predictionSvc, accessSvc, logger)
	router := httpapi.NewRouter(handler, page, accessSvc, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}
