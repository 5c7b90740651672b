package team

import "fmt"

// Strength carries the per-team coefficients of a rated league.
type Strength struct {
	AvgGoalsFor  float64 `json:"avg_goals_for" db:"avg_goals_for"`
	HomeStrength float64 `json:"home_strength" db:"home_strength"`
	AwayStrength float64 `json:"away_strength" db:"away_strength"`
}

func (s Strength) Validate() error {
	if s.AvgGoalsFor < 0 || s.HomeStrength < 0 || s.AwayStrength < 0 {
		return fmt.Errorf("strength coefficients must be >= 0")
	}

	return nil
}

// Team is a club inside one league. Strength is only meaningful when the
// league is rated.
type Team struct {
	Name     string
	Strength Strength
}

// League is an ordered list of teams. A rated league was defined with
// coefficients instead of bare names.
type League struct {
	Name  string
	Rated bool
	Teams []Team
}

func (l League) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	for _, t := range l.Teams {
		if t.Name == "" {
			return fmt.Errorf("league %s: team name is required", l.Name)
		}
		if !l.Rated {
			continue
		}
		if err := t.Strength.Validate(); err != nil {
			return fmt.Errorf("league %s team %s: %w", l.Name, t.Name, err)
		}
	}

	return nil
}

// TeamNames returns the team names in catalog order.
func (l League) TeamNames() []string {
	out := make([]string, 0, len(l.Teams))
	for _, t := range l.Teams {
		out = append(out, t.Name)
	}
	return out
}
