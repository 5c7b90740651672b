package prediction

type Outcome string

const (
	OutcomeHomeWin Outcome = "HOME_WIN"
	OutcomeAwayWin Outcome = "AWAY_WIN"
	OutcomeDraw    Outcome = "DRAW"
)

// Model names the rule set a score was computed with.
type Model string

const (
	ModelNameHash    Model = "namehash"
	ModelCoefficient Model = "coefficient"
)

// Score is the engine output for one fixture.
type Score struct {
	Outcome   Outcome
	HomeGoals float64
	AwayGoals float64
}

// Prediction is a score bound to the fixture it was computed for.
type Prediction struct {
	League string
	Home   string
	Away   string
	Model  Model
	Score
}
