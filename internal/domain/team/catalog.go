package team

import (
	"context"
	"fmt"
	"strings"
)

// Catalog is the read-only league -> teams lookup. It is built once at startup
// and never mutated afterwards.
type Catalog struct {
	order   []string
	leagues map[string]League
	index   map[string]map[string]int
}

// NewCatalog validates the leagues, drops duplicate team names keeping the
// first occurrence and preserves league order.
func NewCatalog(leagues []League) (*Catalog, error) {
	c := &Catalog{
		order:   make([]string, 0, len(leagues)),
		leagues: make(map[string]League, len(leagues)),
		index:   make(map[string]map[string]int, len(leagues)),
	}

	for _, l := range leagues {
		l.Name = strings.TrimSpace(l.Name)
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.leagues[l.Name]; exists {
			return nil, fmt.Errorf("duplicate league %s", l.Name)
		}

		teams := make([]Team, 0, len(l.Teams))
		positions := make(map[string]int, len(l.Teams))
		for _, t := range l.Teams {
			t.Name = strings.TrimSpace(t.Name)
			if t.Name == "" {
				return nil, fmt.Errorf("league %s: team name is required", l.Name)
			}
			if _, seen := positions[t.Name]; seen {
				continue
			}
			positions[t.Name] = len(teams)
			teams = append(teams, t)
		}
		l.Teams = teams

		c.order = append(c.order, l.Name)
		c.leagues[l.Name] = l
		c.index[l.Name] = positions
	}

	return c, nil
}

// LoadCatalog reads all leagues from src and builds the catalog.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, error) {
	leagues, err := src.LoadLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leagues: %w", err)
	}
	return NewCatalog(leagues)
}

func (c *Catalog) LeagueNames() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) League(name string) (League, bool) {
	l, ok := c.leagues[name]
	if !ok {
		return League{}, false
	}
	teams := make([]Team, len(l.Teams))
	copy(teams, l.Teams)
	l.Teams = teams
	return l, true
}

func (c *Catalog) Team(league, name string) (Team, bool) {
	positions, ok := c.index[league]
	if !ok {
		return Team{}, false
	}
	pos, ok := positions[name]
	if !ok {
		return Team{}, false
	}
	return c.leagues[league].Teams[pos], true
}

func (c *Catalog) Len() int {
	return len(c.order)
}
