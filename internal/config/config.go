package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

const (
	PredictionModelAuto     = "auto"
	PredictionModelNameHash = "namehash"
)

const defaultPublicURL = "https://example.com"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level
	CORSAllowedOrigins      []string
	CatalogSource           string
	CatalogPath             string
	DBURL                   string
	DBDisablePreparedBinary bool
	PredictionModel         string
	BoardWorkers            int
	Stripe                  StripeConfig
	UIDefaultLocale         string
	UptraceEnabled          bool
	UptraceDSN              string
	UptraceLogsEnabled      bool
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeUploadRate     time.Duration
	PprofEnabled            bool
	PprofAddr               string
}

// StripeConfig holds the subscription provider settings. Empty credentials are
// allowed at startup; the access gate reports them as not configured.
type StripeConfig struct {
	SecretKey  string
	PriceID    string
	BaseURL    string
	PublicURL  string
	PriceLabel string
}

// Configured reports whether both the secret key and the price are present.
func (s StripeConfig) Configured() bool {
	return s.SecretKey != "" && s.PriceID != ""
}

func (s StripeConfig) SuccessURL() string {
	return s.publicURL() + "?success=1"
}

func (s StripeConfig) CancelURL() string {
	return s.publicURL() + "?canceled=1"
}

func (s StripeConfig) publicURL() string {
	if s.PublicURL == "" {
		return defaultPublicURL
	}
	return s.PublicURL
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	corsOrigins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(corsOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	catalogSource := strings.ToLower(strings.TrimSpace(getEnv("CATALOG_SOURCE", CatalogSourceFile)))
	switch catalogSource {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCE %q: valid values are %s, %s", catalogSource, CatalogSourceFile, CatalogSourcePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if catalogSource == CatalogSourcePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when CATALOG_SOURCE=%s", CatalogSourcePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	predictionModel := strings.ToLower(strings.TrimSpace(getEnv("PREDICTION_MODEL", PredictionModelAuto)))
	switch predictionModel {
	case PredictionModelAuto, PredictionModelNameHash:
	default:
		return Config{}, fmt.Errorf("invalid PREDICTION_MODEL %q: valid values are %s, %s", predictionModel, PredictionModelAuto, PredictionModelNameHash)
	}

	boardWorkers, err := getEnvAsInt("BOARD_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOARD_WORKERS: %w", err)
	}
	if boardWorkers < 1 {
		return Config{}, fmt.Errorf("BOARD_WORKERS must be >= 1")
	}

	stripeCfg, err := loadStripe()
	if err != nil {
		return Config{}, err
	}

	locale := strings.ToLower(strings.TrimSpace(getEnv("UI_DEFAULT_LOCALE", "cs")))
	if locale != "cs" && locale != "en" {
		return Config{}, fmt.Errorf("invalid UI_DEFAULT_LOCALE %q: valid values are cs, en", locale)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "match-predictor"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                resolveHTTPAddr(),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:      corsOrigins,
		CatalogSource:           catalogSource,
		CatalogPath:             strings.TrimSpace(getEnv("CATALOG_PATH", "data/teams.json")),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		PredictionModel:         predictionModel,
		BoardWorkers:            boardWorkers,
		Stripe:                  stripeCfg,
		UIDefaultLocale:         locale,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		UptraceLogsEnabled:      uptraceLogsEnabled,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeUploadRate:     pyroscopeUploadRate,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	return cfg, nil
}

func loadStripe() (StripeConfig, error) {
	publicURL := strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_URL", "")), "/")
	if publicURL != "" {
		parsed, err := url.Parse(publicURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return StripeConfig{}, fmt.Errorf("invalid PUBLIC_URL %q: expected absolute http(s) URL", publicURL)
		}
	}

	return StripeConfig{
		SecretKey:  strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		PriceID:    strings.TrimSpace(os.Getenv("STRIPE_PRICE_ID")),
		BaseURL:    strings.TrimRight(strings.TrimSpace(getEnv("STRIPE_BASE_URL", "https://api.stripe.com")), "/"),
		PublicURL:  publicURL,
		PriceLabel: strings.TrimSpace(getEnv("SUBSCRIPTION_PRICE_LABEL", "399 Kč / měsíc")),
	}, nil
}

// resolveHTTPAddr honours APP_HTTP_ADDR first, then the PORT variable set by
// hosting platforms.
func resolveHTTPAddr() string {
	if addr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR")); addr != "" {
		return addr
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		return ":" + port
	}
	return ":8080"
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
