package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

type PredictionConfig struct {
	// ForceNameHash scores rated leagues with the name model as well.
	ForceNameHash bool
	BoardWorkers  int
}

type PredictionService struct {
	catalog *team.Catalog
	cfg     PredictionConfig
}

func NewPredictionService(catalog *team.Catalog, cfg PredictionConfig) *PredictionService {
	if cfg.BoardWorkers < 1 {
		cfg.BoardWorkers = 1
	}

	return &PredictionService{
		catalog: catalog,
		cfg:     cfg,
	}
}

func (s *PredictionService) ListLeagues(ctx context.Context) []string {
	_, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListLeagues")
	defer span.End()

	return s.catalog.LeagueNames()
}

func (s *PredictionService) ListTeams(ctx context.Context, leagueName string) ([]string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListTeams")
	defer span.End()

	lg, err := s.league(leagueName)
	if err != nil {
		return nil, err
	}

	return lg.TeamNames(), nil
}

// DefaultPair picks the first two teams of the league unless the hints name
// teams of that league.
func (s *PredictionService) DefaultPair(leagueName, homeHint, awayHint string) (string, string, error) {
	lg, err := s.league(leagueName)
	if err != nil {
		return "", "", err
	}
	names := lg.TeamNames()
	if len(names) == 0 {
		return "", "", fmt.Errorf("%w: league %s has no teams", ErrNotFound, lg.Name)
	}

	home := names[0]
	away := names[0]
	if len(names) > 1 {
		away = names[1]
	}
	if _, ok := s.catalog.Team(lg.Name, strings.TrimSpace(homeHint)); ok {
		home = strings.TrimSpace(homeHint)
	}
	if _, ok := s.catalog.Team(lg.Name, strings.TrimSpace(awayHint)); ok {
		away = strings.TrimSpace(awayHint)
	}

	return home, away, nil
}

// Predict scores one fixture. Equal teams are rejected before the engine runs.
func (s *PredictionService) Predict(ctx context.Context, leagueName, home, away string) (prediction.Prediction, error) {
	_, span := startUsecaseSpan(ctx, "usecase.PredictionService.Predict")
	defer span.End()

	leagueName = strings.TrimSpace(leagueName)
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if leagueName == "" || home == "" || away == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: league, home and away are required", ErrInvalidInput)
	}

	lg, err := s.league(leagueName)
	if err != nil {
		return prediction.Prediction{}, err
	}
	homeTeam, ok := s.catalog.Team(lg.Name, home)
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, home, lg.Name)
	}
	awayTeam, ok := s.catalog.Team(lg.Name, away)
	if !ok {
		return prediction.Prediction{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, away, lg.Name)
	}
	if homeTeam.Name == awayTeam.Name {
		return prediction.Prediction{}, fmt.Errorf("%w: home and away must differ (%s)", ErrInvalidTeamPair, home)
	}

	out := s.score(lg, homeTeam, awayTeam)
	span.SetAttributes(
		attribute.String("prediction.model", string(out.Model)),
		attribute.String("prediction.outcome", string(out.Outcome)),
	)
	return out, nil
}

type fixturePair struct {
	home team.Team
	away team.Team
}

// Board scores every ordered pair of distinct teams in the league. The result
// is ordered by home team, then away team, in catalog order.
func (s *PredictionService) Board(ctx context.Context, leagueName string) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Board")
	defer span.End()

	lg, err := s.league(leagueName)
	if err != nil {
		return nil, err
	}

	pairs := make([]fixturePair, 0, len(lg.Teams)*(len(lg.Teams)-1))
	for _, home := range lg.Teams {
		for _, away := range lg.Teams {
			if home.Name == away.Name {
				continue
			}
			pairs = append(pairs, fixturePair{home: home, away: away})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapper := iter.Mapper[fixturePair, prediction.Prediction]{MaxGoroutines: s.cfg.BoardWorkers}
	out := mapper.Map(pairs, func(p *fixturePair) prediction.Prediction {
		return s.score(lg, p.home, p.away)
	})
	span.SetAttributes(attribute.Int("prediction.board_size", len(out)))

	return out, nil
}

func (s *PredictionService) score(lg team.League, home, away team.Team) prediction.Prediction {
	out := prediction.Prediction{
		League: lg.Name,
		Home:   home.Name,
		Away:   away.Name,
	}
	if lg.Rated && !s.cfg.ForceNameHash {
		out.Model = prediction.ModelCoefficient
		out.Score = prediction.ScoreByStrength(home.Strength, away.Strength)
		return out
	}

	out.Model = prediction.ModelNameHash
	out.Score = prediction.ScoreByName(home.Name, away.Name)
	return out
}

func (s *PredictionService) league(name string) (team.League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.League{}, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}
	lg, ok := s.catalog.League(name)
	if !ok {
		return team.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, name)
	}
	return lg, nil
}
