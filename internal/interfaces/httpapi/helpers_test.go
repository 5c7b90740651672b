package httpapi

import (
	"net/http"
	"testing"

	"github.com/riskibarqy/match-predictor/internal/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	subscriptionmock "github.com/riskibarqy/match-predictor/internal/mocks/domain/subscription"
	"github.com/riskibarqy/match-predictor/internal/platform/id"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const testEmail = "jan.novak@email.cz"

type testServer struct {
	router   http.Handler
	provider *subscriptionmock.Provider
}

func newTestServer(t *testing.T, configured bool) testServer {
	t.Helper()

	catalog, err := team.NewCatalog([]team.League{
		{
			Name:  "Premier League",
			Teams: []team.Team{{Name: "Arsenal"}, {Name: "Chelsea"}, {Name: "Liverpool"}},
		},
		{
			Name:  "Chance Liga",
			Rated: true,
			Teams: []team.Team{
				{Name: "Sparta Praha", Strength: team.Strength{AvgGoalsFor: 1.5, HomeStrength: 1.2, AwayStrength: 0.9}},
				{Name: "Slavia Praha", Strength: team.Strength{AvgGoalsFor: 2.0, HomeStrength: 1.1, AwayStrength: 0.9}},
			},
		},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	provider := subscriptionmock.NewProvider(t)
	accessCfg := usecase.AccessConfig{}
	if configured {
		accessCfg = usecase.AccessConfig{
			Configured: true,
			PriceID:    "price_monthly",
			SuccessURL: "https://predictor.example?success=1",
			CancelURL:  "https://predictor.example?canceled=1",
		}
	}

	logger := logging.NewNop()
	predictions := usecase.NewPredictionService(catalog, usecase.PredictionConfig{BoardWorkers: 2})
	access := usecase.NewAccessService(provider, id.Static("idem-key-1"), accessCfg, logger)

	page, err := NewPage(predictions, access, PageConfig{DefaultLocale: localeCzech, PriceLabel: "399 Kč / měsíc"}, logger)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	router := NewRouter(NewHandler(predictions, access, logger), page, access, logger, RouterConfig{
		CORSAllowedOrigins: []string{"*"},
	})
	return testServer{router: router, provider: provider}
}

func (s testServer) expectActiveSubscription() {
	s.provider.On("ListCustomerIDs", mock.Anything, testEmail, 3).Return([]string{"cus_1"}, nil)
	s.provider.On("ListSubscriptionStatuses", mock.Anything, "cus_1", 5).Return([]subscription.Status{subscription.StatusActive}, nil)
}

func (s testServer) expectNoSubscription() {
	s.provider.On("ListCustomerIDs", mock.Anything, testEmail, 3).Return([]string{}, nil)
}
