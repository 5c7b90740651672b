package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CatalogRepository stores the team catalog in the leagues and teams tables.
type CatalogRepository struct {
	db *sqlx.DB
}

var _ team.Source = (*CatalogRepository)(nil)

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) LoadLeagues(ctx context.Context) ([]team.League, error) {
	query, args, err := selectLeaguesQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}
	var leagueRows []leagueTableModel
	if err := r.db.SelectContext(ctx, &leagueRows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	query, args, err = selectTeamsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}
	var teamRows []teamTableModel
	if err := r.db.SelectContext(ctx, &teamRows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	return assemble(leagueRows, teamRows), nil
}

// ReplaceCatalog swaps the stored catalog for leagues in one transaction.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, leagues []team.League) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace catalog tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"teams", "leagues"} {
		query, args, buildErr := psql.Delete(table).ToSql()
		if buildErr != nil {
			return fmt.Errorf("build delete %s query: %w", table, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	for position, lg := range leagues {
		query, args, buildErr := insertLeagueQuery(lg, position).ToSql()
		if buildErr != nil {
			return fmt.Errorf("build insert league query: %w", buildErr)
		}
		var leagueID int64
		if err = tx.GetContext(ctx, &leagueID, query, args...); err != nil {
			return fmt.Errorf("insert league %s: %w", lg.Name, err)
		}
		if len(lg.Teams) == 0 {
			continue
		}

		query, args, buildErr = insertTeamsQuery(leagueID, lg.Teams).ToSql()
		if buildErr != nil {
			return fmt.Errorf("build insert teams query: %w", buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert teams league=%s: %w", lg.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace catalog tx: %w", err)
	}
	return nil
}

func selectLeaguesQuery() squirrel.SelectBuilder {
	return psql.Select("id", "name", "rated", "position", "created_at").
		From("leagues").
		OrderBy("position", "id")
}

func selectTeamsQuery() squirrel.SelectBuilder {
	return psql.Select("t.league_id", "t.name", "t.position", "t.avg_goals_for", "t.home_strength", "t.away_strength").
		From("teams t").
		Join("leagues l ON l.id = t.league_id").
		OrderBy("l.position", "t.position", "t.name")
}

func insertLeagueQuery(lg team.League, position int) squirrel.InsertBuilder {
	return psql.Insert("leagues").
		SetMap(squirrel.Eq{
			"name":     lg.Name,
			"rated":    lg.Rated,
			"position": position,
		}).
		Suffix("RETURNING id")
}

func insertTeamsQuery(leagueID int64, teams []team.Team) squirrel.InsertBuilder {
	builder := psql.Insert("teams").
		Columns("league_id", "name", "position", "avg_goals_for", "home_strength", "away_strength")
	for position, t := range teams {
		builder = builder.Values(leagueID, t.Name, position, t.Strength.AvgGoalsFor, t.Strength.HomeStrength, t.Strength.AwayStrength)
	}
	return builder
}

func assemble(leagueRows []leagueTableModel, teamRows []teamTableModel) []team.League {
	out := make([]team.League, 0, len(leagueRows))
	byID := make(map[int64]int, len(leagueRows))
	for _, row := range leagueRows {
		byID[row.ID] = len(out)
		out = append(out, team.League{Name: row.Name, Rated: row.Rated})
	}

	for _, row := range teamRows {
		idx, ok := byID[row.LeagueID]
		if !ok {
			continue
		}
		out[idx].Teams = append(out[idx].Teams, team.Team{
			Name: row.Name,
			Strength: team.Strength{
				AvgGoalsFor:  row.AvgGoalsFor,
				HomeStrength: row.HomeStrength,
				AwayStrength: row.AwayStrength,
			},
		})
	}

	return out
}
