package analytics

import (
	"testing"
	"time"

	"coachtrack/pkg/domain"
)

func TestComputeAverageHours(t *testing.T) {
	// Two sessions a week apart: 5 hours over 7 days.
	sessions := []domain.Session{
		sessionOn(day(2024, time.January, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 2),
		sessionOn(day(2024, time.January, 8), "a", domain.CoacheeIndividual, domain.PaymentPaid, 3),
	}
	avg := ComputeAverageHours(sessions)
	want := AverageHours{Week: 5.0, Month: 21.7, Year: 260.9}
	if avg != want {
		t.Fatalf("expected %+v, got %+v", want, avg)
	}
}

func TestComputeAverageHoursNeedsTwoSessions(t *testing.T) {
	if avg := ComputeAverageHours(nil); avg != (AverageHours{}) {
		t.Fatalf("no sessions must yield zeroes, got %+v", avg)
	}
	one := []domain.Session{
		sessionOn(day(2024, time.January, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 2),
	}
	if avg := ComputeAverageHours(one); avg != (AverageHours{}) {
		t.Fatalf("a single session must yield zeroes, got %+v", avg)
	}
}

func TestComputeAverageHoursFloorsSpanAtOneDay(t *testing.T) {
	// Two sessions on the same day: span is treated as one day.
	sessions := []domain.Session{
		sessionOn(day(2024, time.March, 10), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.March, 10), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	avg := ComputeAverageHours(sessions)
	if avg.Week != 14.0 {
		t.Fatalf("expected 2 hours over one day to project to 14.0 per week, got %v", avg.Week)
	}
	if avg.Month != 60.9 { // 2 * 30.44
		t.Fatalf("expected 60.9 per month, got %v", avg.Month)
	}
	if avg.Year != 730.5 { // 2 * 365.25
		t.Fatalf("expected 730.5 per year, got %v", avg.Year)
	}
}

func TestComputeCoacheeStats(t *testing.T) {
	sessions := []domain.Session{
		sessionOn(day(2024, time.January, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 2),
		sessionOn(day(2024, time.January, 8), "a", domain.CoacheeIndividual, domain.PaymentPaid, 3),
		sessionOn(day(2024, time.January, 4), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	ds := NewDataset([]domain.Coachee{individual("a", "Asha", "Rao"), individual("b", "Ben", "Okafor")}, sessions, nil)

	stats := ComputeCoacheeStats(ds, "a")
	want := CoacheeStats{Sessions: 2, Hours: 5.0, EngagementDays: 7}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	single := ComputeCoacheeStats(ds, "b")
	if single.EngagementDays != 0 {
		t.Fatalf("a single session has no engagement span, got %d days", single.EngagementDays)
	}
	if empty := ComputeCoacheeStats(ds, "nobody"); empty != (CoacheeStats{}) {
		t.Fatalf("unknown coachee must yield zero stats, got %+v", empty)
	}
}

func TestComputeOrganisationStats(t *testing.T) {
	sources := []domain.Source{
		{Base: domain.Base{ID: "s1"}, Name: "LinkedIn Referral"},
		{Base: domain.Base{ID: "s2"}, Name: "Word of Mouth"},
	}
	a := individual("a", "Asha", "Rao")
	a.Organisation = "Acme"
	a.SourceID = strPtr("s1")
	b := individual("b", "Ben", "Okafor")
	b.Organisation = "Acme"
	b.SourceID = strPtr("s2")
	c := individual("c", "Chen", "Wei")
	c.Organisation = "Globex"

	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 2), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 3), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 4), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	ds := NewDataset([]domain.Coachee{a, b, c}, sessions, sources)

	stats := ComputeOrganisationStats(ds, "Acme")
	if stats.Coachees != 2 || stats.Sessions != 3 {
		t.Fatalf("expected 2 coachees and 3 sessions, got %+v", stats)
	}
	if len(stats.Sources) != 2 || stats.Sources[0] != "LinkedIn Referral" || stats.Sources[1] != "Word of Mouth" {
		t.Fatalf("unexpected sources: %v", stats.Sources)
	}
	if len(stats.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(stats.Members))
	}
}

func TestComputeSourceStats(t *testing.T) {
	sources := []domain.Source{{Base: domain.Base{ID: "s1"}, Name: "LinkedIn Referral"}}
	a := individual("a", "Asha", "Rao")
	a.Organisation = "Acme"
	a.SourceID = strPtr("s1")
	b := individual("b", "Ben", "Okafor")
	b.Organisation = "Acme"
	b.SourceID = strPtr("s1")
	c := individual("c", "Chen", "Wei")
	c.SourceID = strPtr("s1") // no organisation

	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 2), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	ds := NewDataset([]domain.Coachee{a, b, c}, sessions, sources)

	stats := ComputeSourceStats(ds, "s1")
	if stats.Coachees != 3 || stats.Sessions != 2 {
		t.Fatalf("expected 3 coachees and 2 sessions, got %+v", stats)
	}
	if len(stats.Organisations) != 1 || stats.Organisations[0] != "Acme" {
		t.Fatalf("expected deduped organisations [Acme], got %v", stats.Organisations)
	}
}

func TestAllOrganisations(t *testing.T) {
	a := individual("a", "Asha", "Rao")
	a.Organisation = "Acme"
	a.Country = "India"
	b := individual("b", "Ben", "Okafor")
	b.Organisation = "Globex"
	b.Country = "Nigeria"
	c := individual("c", "Chen", "Wei")
	c.Organisation = "Acme"
	c.Country = "Singapore" // first coachee's country wins
	d := individual("d", "Dana", "Iqbal") // no organisation

	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1.25),
		sessionOn(day(2024, time.May, 2), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1.5),
		sessionOn(day(2024, time.May, 3), "b", domain.CoacheeIndividual, domain.PaymentPaid, 2),
		sessionOn(day(2024, time.May, 4), "d", domain.CoacheeIndividual, domain.PaymentPaid, 2),
	}
	ds := NewDataset([]domain.Coachee{a, b, c, d}, sessions, nil)

	rows := AllOrganisations(ds)
	if len(rows) != 2 {
		t.Fatalf("expected 2 organisations, got %+v", rows)
	}
	acme := rows[0]
	if acme.Name != "Acme" || acme.Country != "India" || acme.Coachees != 2 || acme.Sessions != 2 || acme.Hours != 2.8 {
		t.Fatalf("unexpected Acme row: %+v", acme)
	}
	globex := rows[1]
	if globex.Name != "Globex" || globex.Country != "Nigeria" || globex.Coachees != 1 || globex.Sessions != 1 || globex.Hours != 2 {
		t.Fatalf("unexpected Globex row: %+v", globex)
	}
}
