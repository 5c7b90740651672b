package postgres

import "time"

type leagueTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Rated     bool      `db:"rated"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

type teamTableModel struct {
	LeagueID     int64   `db:"league_id"`
	Name         string  `db:"name"`
	Position     int     `db:"position"`
	AvgGoalsFor  float64 `db:"avg_goals_for"`
	HomeStrength float64 `db:"home_strength"`
	AwayStrength float64 `db:"away_strength"`
}
