package team

import (
	"reflect"
	"testing"
)

func TestNewCatalog_DedupKeepsFirstOccurrence(t *testing.T) {
	catalog, err := NewCatalog([]League{
		{Name: "Premier League", Teams: []Team{{Name: "Arsenal"}, {Name: "Chelsea"}, {Name: " Arsenal "}, {Name: "Everton"}, {Name: "Chelsea"}}},
		{Name: "Fortuna Liga", Teams: []Team{{Name: "Sparta Praha"}}},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	league, ok := catalog.League("Premier League")
	if !ok {
		t.Fatalf("expected league to exist")
	}
	want := []string{"Arsenal", "Chelsea", "Everton"}
	if got := league.TeamNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected teams: got=%v want=%v", got, want)
	}
	if got := catalog.LeagueNames(); !reflect.DeepEqual(got, []string{"Premier League", "Fortuna Liga"}) {
		t.Fatalf("unexpected league order: %v", got)
	}
}

func TestNewCatalog_RejectsInvalidLeagues(t *testing.T) {
	cases := map[string][]League{
		"empty league name": {{Name: " ", Teams: []Team{{Name: "A"}}}},
		"empty team name":   {{Name: "L", Teams: []Team{{Name: ""}}}},
		"duplicate league":  {{Name: "L"}, {Name: "L"}},
		"negative strength": {{Name: "L", Rated: true, Teams: []Team{{Name: "A", Strength: Strength{AvgGoalsFor: -1}}}}},
	}
	for name, leagues := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCatalog(leagues); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCatalog_TeamLookup(t *testing.T) {
	catalog, err := NewCatalog([]League{{
		Name:  "Bundesliga",
		Rated: true,
		Teams: []Team{{Name: "Bayern München", Strength: Strength{AvgGoalsFor: 2.4, HomeStrength: 1.2, AwayStrength: 1.1}}},
	}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	got, ok := catalog.Team("Bundesliga", "Bayern München")
	if !ok {
		t.Fatalf("expected team to exist")
	}
	if got.Strength.AvgGoalsFor != 2.4 {
		t.Fatalf("unexpected strength: %+v", got.Strength)
	}
	if _, ok := catalog.Team("Bundesliga", "Borussia Dortmund"); ok {
		t.Fatalf("expected unknown team lookup to fail")
	}
	if _, ok := catalog.Team("La Liga", "Bayern München"); ok {
		t.Fatalf("expected unknown league lookup to fail")
	}
}

func TestCatalog_LeagueReturnsCopy(t *testing.T) {
	catalog, err := NewCatalog([]League{{Name: "L", Teams: []Team{{Name: "A"}, {Name: "B"}}}})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	league, _ := catalog.League("L")
	league.Teams[0].Name = "mutated"

	again, _ := catalog.League("L")
	if again.Teams[0].Name != "A" {
		t.Fatalf("catalog was mutated through returned league")
	}
}
