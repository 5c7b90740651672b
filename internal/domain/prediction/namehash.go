package prediction

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	minGoals    = 0.3
	drawBand    = 0.35
	homeWeight  = 1.7
	awayWeight  = 0.9
	rawModulus  = 260
	baseModulus = 2.8
	goalsOffset = 0.6
	homeBonus   = 0.25
	awayFactor  = 0.75
)

// Digest sums the code points of the letters and digits of the lowercased name.
func Digest(name string) int {
	sum := 0
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			sum += int(r)
		}
	}
	return sum
}

// ScoreByName derives a score from the two team names alone. Equal names are
// not rejected here; callers validate the pair.
func ScoreByName(home, away string) Score {
	dHome := float64(Digest(home))
	dAway := float64(Digest(away))

	homeGoals := math.Max(minGoals, round1(base(dHome, dAway)+homeBonus))
	awayGoals := math.Max(minGoals, round1(base(dAway, dHome)*awayFactor))

	return Score{
		Outcome:   bandedOutcome(homeGoals, awayGoals),
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	}
}

func base(self, other float64) float64 {
	raw := goalsOffset + math.Mod(self*homeWeight+other*awayWeight, rawModulus)/100
	return goalsOffset + math.Mod(raw, baseModulus)
}

func bandedOutcome(home, away float64) Outcome {
	switch {
	case home-away > drawBand:
		return OutcomeHomeWin
	case away-home > drawBand:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// round1 correctly rounds the exact binary value to one decimal digit, ties
// to even. math.Round(x*10)/10 drifts on inputs such as 0.15.
func round1(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return v
}
