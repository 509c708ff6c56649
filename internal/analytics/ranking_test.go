package analytics

import (
	"testing"
	"time"

	"coachtrack/pkg/domain"
)

func sessionsFor(coacheeID string, n int, start time.Time) []domain.Session {
	out := make([]domain.Session, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sessionOn(start.AddDate(0, 0, i), coacheeID, domain.CoacheeIndividual, domain.PaymentPaid, 1))
	}
	return out
}

func TestTopClientsTiesKeepEncounterOrder(t *testing.T) {
	start := day(2024, time.January, 1)
	var sessions []domain.Session
	sessions = append(sessions, sessionsFor("a", 5, start)...)
	sessions = append(sessions, sessionsFor("b", 3, start)...)
	sessions = append(sessions, sessionsFor("c", 3, start)...)
	sessions = append(sessions, sessionsFor("d", 1, start)...)

	coachees := []domain.Coachee{
		individual("a", "Asha", "Rao"),
		individual("b", "Ben", "Okafor"),
		individual("c", "Chen", "Wei"),
		individual("d", "Dana", "Iqbal"),
	}
	ds := NewDataset(coachees, sessions, nil)

	ranked := TopClients(ds, 0)
	want := []RankedEntry{
		{Name: "Asha Rao", Count: 5, Hours: 5},
		{Name: "Ben Okafor", Count: 3, Hours: 3},
		{Name: "Chen Wei", Count: 3, Hours: 3},
		{Name: "Dana Iqbal", Count: 1, Hours: 1},
	}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(ranked))
	}
	for i := range want {
		if ranked[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], ranked[i])
		}
	}

	truncated := TopClients(ds, 2)
	if len(truncated) != 2 || truncated[0].Name != "Asha Rao" || truncated[1].Name != "Ben Okafor" {
		t.Fatalf("limit 2 must keep the top two in order, got %+v", truncated)
	}
}

func TestTopClientsUnknownCoacheeName(t *testing.T) {
	sessions := sessionsFor("ghost", 2, day(2024, time.March, 1))
	ds := NewDataset(nil, sessions, nil)
	ranked := TopClients(ds, 0)
	if len(ranked) != 1 || ranked[0].Name != "Unknown" || ranked[0].Count != 2 {
		t.Fatalf("expected Unknown fallback for unresolved coachee, got %+v", ranked)
	}
}

func TestTopOrganisationsSkipsEmptyOrganisation(t *testing.T) {
	a := individual("a", "Asha", "Rao")
	a.Organisation = "Acme"
	b := individual("b", "Ben", "Okafor")
	b.Organisation = "Globex"
	c := individual("c", "Chen", "Wei")
	c.Organisation = "   " // whitespace only, treated as unset
	d := individual("d", "Dana", "Iqbal")

	start := day(2024, time.February, 1)
	var sessions []domain.Session
	sessions = append(sessions, sessionsFor("a", 2, start)...)
	sessions = append(sessions, sessionsFor("b", 4, start)...)
	sessions = append(sessions, sessionsFor("c", 6, start)...)
	sessions = append(sessions, sessionsFor("d", 6, start)...)

	ds := NewDataset([]domain.Coachee{a, b, c, d}, sessions, nil)
	ranked := TopOrganisations(ds, 0)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 organisations, got %+v", ranked)
	}
	if ranked[0] != (RankedEntry{Name: "Globex", Count: 4, Hours: 4}) || ranked[1] != (RankedEntry{Name: "Acme", Count: 2, Hours: 2}) {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
}

func TestRankingsIgnoreDashboardFilters(t *testing.T) {
	a := individual("a", "Asha", "Rao")
	a.Organisation = "Acme"
	sessions := []domain.Session{
		sessionOn(day(2020, time.June, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	ds := NewDataset([]domain.Coachee{a}, sessions, nil)

	now := day(2024, time.May, 15)
	dash := BuildDashboard(ds, Params{DateRange: RangeThisYear}, now)
	if dash.TotalSessions != 1 {
		t.Fatalf("filter should keep 1 session, got %d", dash.TotalSessions)
	}
	if len(dash.TopClients) != 1 || dash.TopClients[0].Count != 2 {
		t.Fatalf("top clients must cover full history, got %+v", dash.TopClients)
	}
	if len(dash.TopOrganisations) != 1 || dash.TopOrganisations[0].Count != 2 {
		t.Fatalf("top organisations must cover full history, got %+v", dash.TopOrganisations)
	}
}
