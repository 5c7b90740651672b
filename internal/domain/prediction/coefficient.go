package prediction

import "github.com/riskibarqy/match-predictor/internal/domain/team"

// ScoreByStrength multiplies each side's average goals by its venue strength.
// The outcome uses a strict comparison of the unrounded products.
func ScoreByStrength(home, away team.Strength) Score {
	homeGoals := home.AvgGoalsFor * home.HomeStrength
	awayGoals := away.AvgGoalsFor * away.AwayStrength

	outcome := OutcomeDraw
	switch {
	case homeGoals > awayGoals:
		outcome = OutcomeHomeWin
	case awayGoals > homeGoals:
		outcome = OutcomeAwayWin
	}

	return Score{
		Outcome:   outcome,
		HomeGoals: round1(homeGoals),
		AwayGoals: round1(awayGoals),
	}
}
