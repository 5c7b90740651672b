package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

// Source reads the catalog document from disk:
//
//	{"Premier League": ["Arsenal", ...], "Fortuna Liga": {"Sparta Praha": {"avg_goals_for": 1.8, ...}}}
//
// A league given as an array is a list of names; a league given as an object
// carries coefficients and is rated.
type Source struct {
	path string
}

var _ team.Source = (*Source)(nil)

func NewSource(path string) *Source {
	return &Source{path: strings.TrimSpace(path)}
}

func (s *Source) LoadLeagues(ctx context.Context) ([]team.League, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	leagues, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return leagues, nil
}

// Decode parses a catalog document keeping leagues and teams in document
// order. Duplicates are left for team.NewCatalog to drop.
func Decode(raw []byte) ([]team.League, error) {
	it := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, raw)
	if it.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("catalog must be a JSON object of leagues")
	}

	leagues := make([]team.League, 0, 8)
	it.ReadObjectCB(func(it *jsoniter.Iterator, leagueName string) bool {
		lg := team.League{Name: leagueName}
		switch it.WhatIsNext() {
		case jsoniter.ArrayValue:
			lg.Teams = readNames(it, leagueName)
		case jsoniter.ObjectValue:
			lg.Rated = true
			lg.Teams = readRated(it)
		default:
			it.ReportError("decode league", fmt.Sprintf("league %q must be an array of names or an object of teams", leagueName))
			return false
		}
		leagues = append(leagues, lg)
		return it.Error == nil
	})
	if it.Error != nil {
		return nil, fmt.Errorf("decode catalog: %w", it.Error)
	}

	return leagues, nil
}

func readNames(it *jsoniter.Iterator, leagueName string) []team.Team {
	teams := make([]team.Team, 0, 20)
	for it.ReadArray() {
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("decode team", fmt.Sprintf("league %q: team names must be strings", leagueName))
			return nil
		}
		teams = append(teams, team.Team{Name: it.ReadString()})
	}
	return teams
}

func readRated(it *jsoniter.Iterator) []team.Team {
	teams := make([]team.Team, 0, 20)
	it.ReadObjectCB(func(it *jsoniter.Iterator, teamName string) bool {
		var strength team.Strength
		it.ReadVal(&strength)
		teams = append(teams, team.Team{Name: teamName, Strength: strength})
		return it.Error == nil
	})
	return teams
}
