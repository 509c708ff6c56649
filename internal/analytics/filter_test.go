package analytics

import (
	"reflect"
	"testing"
	"time"

	"coachtrack/pkg/domain"
)

func sessionOn(date time.Time, coacheeID string, coacheeType domain.CoacheeType, payment domain.PaymentType, hours float64) domain.Session {
	return domain.Session{
		Base:        domain.Base{ID: coacheeID + date.Format("20060102"), CreatedAt: date},
		CoacheeID:   coacheeID,
		CoacheeType: coacheeType,
		SessionDate: date,
		Duration:    hours,
		Themes:      []string{"Career"},
		PaymentType: payment,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterSessionsDateRanges(t *testing.T) {
	now := day(2024, time.May, 15)
	sessions := []domain.Session{
		sessionOn(day(2023, time.December, 30), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.February, 10), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.April, 20), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 2), "d", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}

	cases := []struct {
		dateRange string
		want      int
	}{
		{"", 4},
		{RangeThisYear, 3},
		{RangeThisQuarter, 2}, // Q2 starts April 1
		{RangeThisMonth, 1},
		{"lastCentury", 4}, // unknown keywords apply no bound
	}
	for _, tc := range cases {
		got := FilterSessions(sessions, Params{DateRange: tc.dateRange}, now)
		if len(got) != tc.want {
			t.Fatalf("range %q: expected %d sessions, got %d", tc.dateRange, tc.want, len(got))
		}
	}
}

func TestFilterSessionsQuarterBoundary(t *testing.T) {
	// A "now" in Q1, Q2, Q3 and Q4 must anchor to Jan, Apr, Jul, Oct.
	sessions := []domain.Session{
		sessionOn(day(2024, time.January, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.April, 1), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.July, 1), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.October, 1), "d", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	counts := map[time.Month]int{
		time.February: 4, time.June: 3, time.August: 2, time.December: 1,
	}
	for month, want := range counts {
		now := day(2024, month, 15)
		got := FilterSessions(sessions, Params{DateRange: RangeThisQuarter}, now)
		if len(got) != want {
			t.Fatalf("now in %s: expected %d sessions, got %d", month, want, len(got))
		}
	}
}

func TestFilterSessionsCoacheeType(t *testing.T) {
	now := day(2024, time.June, 1)
	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 2), "b", domain.CoacheeTeam, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 3), "c", domain.CoacheeGroup, domain.PaymentPaid, 1),
	}

	if got := FilterSessions(sessions, Params{CoacheeType: "Team"}, now); len(got) != 1 || got[0].CoacheeID != "b" {
		t.Fatalf("expected only the team session, got %+v", got)
	}
	if got := FilterSessions(sessions, Params{CoacheeType: CoacheeTypeAll}, now); len(got) != 3 {
		t.Fatalf("type %q must disable the filter", CoacheeTypeAll)
	}
	if got := FilterSessions(sessions, Params{}, now); len(got) != 3 {
		t.Fatalf("empty type must disable the filter")
	}
}

func TestFilterSessionsPaymentTypes(t *testing.T) {
	now := day(2024, time.June, 1)
	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 2), "b", domain.CoacheeIndividual, domain.PaymentPeer, 1),
		sessionOn(day(2024, time.May, 3), "c", domain.CoacheeIndividual, domain.PaymentProBono, 1),
	}

	got := FilterSessions(sessions, Params{PaymentTypes: []domain.PaymentType{domain.PaymentPaid, domain.PaymentProBono}}, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}

	// An empty selection keeps everything rather than excluding everything.
	if got := FilterSessions(sessions, Params{PaymentTypes: nil}, now); len(got) != 3 {
		t.Fatalf("empty payment selection must keep all sessions, got %d", len(got))
	}
	if got := FilterSessions(sessions, Params{PaymentTypes: []domain.PaymentType{}}, now); len(got) != 3 {
		t.Fatalf("zero-length payment selection must keep all sessions, got %d", len(got))
	}
}

func TestFilterSessionsIsIdempotentAndOrderPreserving(t *testing.T) {
	now := day(2024, time.June, 1)
	sessions := []domain.Session{
		sessionOn(day(2024, time.January, 5), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.March, 2), "b", domain.CoacheeTeam, domain.PaymentPeer, 1),
		sessionOn(day(2024, time.April, 9), "c", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2024, time.May, 20), "d", domain.CoacheeGroup, domain.PaymentProBono, 1),
	}
	params := Params{DateRange: RangeThisYear, CoacheeType: "Individual", PaymentTypes: []domain.PaymentType{domain.PaymentPaid}}

	once := FilterSessions(sessions, params, now)
	twice := FilterSessions(once, params, now)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter must be idempotent: %+v vs %+v", once, twice)
	}
	for i := 1; i < len(once); i++ {
		if once[i].SessionDate.Before(once[i-1].SessionDate) {
			t.Fatalf("input order must be preserved")
		}
	}
}

func TestFilterSessionsDoesNotMutateInput(t *testing.T) {
	now := day(2024, time.June, 1)
	sessions := []domain.Session{
		sessionOn(day(2024, time.May, 1), "a", domain.CoacheeIndividual, domain.PaymentPaid, 1),
		sessionOn(day(2023, time.May, 1), "b", domain.CoacheeIndividual, domain.PaymentPaid, 1),
	}
	before := append([]domain.Session(nil), sessions...)
	_ = FilterSessions(sessions, Params{DateRange: RangeThisYear}, now)
	if !reflect.DeepEqual(sessions, before) {
		t.Fatalf("input slice must not be mutated")
	}
}
