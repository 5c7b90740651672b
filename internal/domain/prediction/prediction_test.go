package prediction

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

func TestDigest(t *testing.T) {
	cases := map[string]int{
		"arsenal":  742,
		"Arsenal":  742,
		"ARS-enal": 742,
		"":         0,
		"  !? ":    0,
		"1":        49,
		"é":        233,
	}
	for in, want := range cases {
		if got := Digest(in); got != want {
			t.Fatalf("Digest(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestScoreByName_Fixtures(t *testing.T) {
	tests := []struct {
		home, away string
		want       Score
	}{
		{"Arsenal", "Chelsea", Score{OutcomeHomeWin, 2.4, 1.5}},
		{"Chelsea", "Arsenal", Score{OutcomeHomeWin, 2.3, 1.6}},
		{"", "", Score{OutcomeHomeWin, 1.4, 0.9}},
		{"Liverpool", "Everton", Score{OutcomeDraw, 1.8, 1.8}},
		{"Bayern München", "Borussia Dortmund", Score{OutcomeAwayWin, 1.5, 2.3}},
		{"Sparta Praha", "Slavia Praha", Score{OutcomeHomeWin, 3.3, 2.2}},
		{"Viktoria Plzeň", "Baník Ostrava", Score{OutcomeHomeWin, 3.2, 0.7}},
	}
	for _, tc := range tests {
		t.Run(tc.home+"_vs_"+tc.away, func(t *testing.T) {
			if got := ScoreByName(tc.home, tc.away); got != tc.want {
				t.Fatalf("ScoreByName(%q, %q) = %+v, want %+v", tc.home, tc.away, got, tc.want)
			}
		})
	}
}

func TestScoreByName_Deterministic(t *testing.T) {
	first := ScoreByName("Arsenal", "Chelsea")
	for i := 0; i < 10; i++ {
		if got := ScoreByName("Arsenal", "Chelsea"); got != first {
			t.Fatalf("non deterministic score: %+v != %+v", got, first)
		}
	}
}

func TestScoreByName_Invariants(t *testing.T) {
	names := []string{
		"", "a", "Arsenal", "Chelsea", "Liverpool", "Everton", "Manchester City",
		"Manchester United", "Tottenham", "Sparta Praha", "Slavia Praha", "Baník Ostrava",
		"Viktoria Plzeň", "Bayern München", "Borussia Dortmund", "1. FC Köln", "ŽFK", "АЕК",
	}
	for _, home := range names {
		for _, away := range names {
			got := ScoreByName(home, away)

			if got.HomeGoals < minGoals || got.AwayGoals < minGoals {
				t.Fatalf("floor violated for %q vs %q: %+v", home, away, got)
			}
			for _, v := range []float64{got.HomeGoals, got.AwayGoals} {
				text := strconv.FormatFloat(v, 'f', -1, 64)
				if dot := strings.IndexByte(text, '.'); dot >= 0 && len(text)-dot-1 > 1 {
					t.Fatalf("more than one decimal for %q vs %q: %s", home, away, text)
				}
			}

			want := OutcomeDraw
			switch {
			case got.HomeGoals-got.AwayGoals > drawBand:
				want = OutcomeHomeWin
			case got.AwayGoals-got.HomeGoals > drawBand:
				want = OutcomeAwayWin
			}
			if got.Outcome != want {
				t.Fatalf("outcome mismatch for %q vs %q: %+v", home, away, got)
			}
		}
	}
}

func TestScoreByName_SwapChangesGoals(t *testing.T) {
	pairs := [][2]string{
		{"Arsenal", "Chelsea"},
		{"Liverpool", "Everton"},
		{"Sparta Praha", "Slavia Praha"},
		{"Bayern München", "Borussia Dortmund"},
		{"Viktoria Plzeň", "Baník Ostrava"},
		{"Manchester City", "Manchester United"},
		{"Tottenham", "a"},
	}
	for _, p := range pairs {
		if Digest(p[0]) == Digest(p[1]) {
			t.Fatalf("fixture %q/%q has equal digests", p[0], p[1])
		}
		got := ScoreByName(p[0], p[1])
		swapped := ScoreByName(p[1], p[0])
		if got.HomeGoals == swapped.HomeGoals && got.AwayGoals == swapped.AwayGoals {
			t.Fatalf("swapping %q and %q did not change goals: %+v", p[0], p[1], got)
		}
	}
}

func TestRound1(t *testing.T) {
	cases := map[float64]float64{
		0.15: 0.1,
		0.25: 0.2,
		0.35: 0.3,
		1.05: 1.1,
		2.45: 2.5,
		2.44: 2.4,
		3.0:  3.0,
	}
	for in, want := range cases {
		if got := round1(in); math.Abs(got-want) > 1e-12 {
			t.Fatalf("round1(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestScoreByStrength(t *testing.T) {
	tests := []struct {
		name       string
		home, away team.Strength
		want       Score
	}{
		{
			name: "home stronger",
			home: team.Strength{AvgGoalsFor: 1.8, HomeStrength: 1.2, AwayStrength: 0.9},
			away: team.Strength{AvgGoalsFor: 1.4, HomeStrength: 1.1, AwayStrength: 1.0},
			want: Score{OutcomeHomeWin, 2.2, 1.4},
		},
		{
			name: "strict comparison on unrounded products",
			home: team.Strength{AvgGoalsFor: 1.5, HomeStrength: 1.2, AwayStrength: 1.0},
			away: team.Strength{AvgGoalsFor: 2.0, HomeStrength: 1.1, AwayStrength: 0.9},
			want: Score{OutcomeAwayWin, 1.8, 1.8},
		},
		{
			name: "equal products draw",
			home: team.Strength{AvgGoalsFor: 1.2, HomeStrength: 1.0, AwayStrength: 1.0},
			away: team.Strength{AvgGoalsFor: 1.2, HomeStrength: 1.0, AwayStrength: 1.0},
			want: Score{OutcomeDraw, 1.2, 1.2},
		},
		{
			name: "small margin is not banded",
			home: team.Strength{AvgGoalsFor: 1.3, HomeStrength: 1.0},
			away: team.Strength{AvgGoalsFor: 1.2, AwayStrength: 1.0},
			want: Score{OutcomeHomeWin, 1.3, 1.2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreByStrength(tc.home, tc.away); got != tc.want {
				t.Fatalf("ScoreByStrength() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
