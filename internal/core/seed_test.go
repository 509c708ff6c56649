package core

import (
	"context"
	"testing"
)

func TestSeedDemoPopulatesEmptyStore(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()

	seeded, err := svc.SeedDemo(ctx)
	if err != nil {
		t.Fatalf("seed demo: %v", err)
	}
	if !seeded {
		t.Fatalf("expected seeding to run on empty store")
	}

	store := svc.Store()
	if got := len(store.ListSources()); got != 3 {
		t.Fatalf("expected 3 sources, got %d", got)
	}
	if got := len(store.ListCoachees()); got != 4 {
		t.Fatalf("expected 4 coachees, got %d", got)
	}
	if got := len(store.ListSessions()); got != 5 {
		t.Fatalf("expected 5 sessions, got %d", got)
	}

	types := map[CoacheeType]int{}
	for _, c := range store.ListCoachees() {
		types[c.Type]++
		if c.SourceID == nil {
			t.Fatalf("every demo coachee has a source, %s is missing one", c.DisplayName())
		}
	}
	if types[CoacheeIndividual] != 2 || types[CoacheeTeam] != 1 || types[CoacheeGroup] != 1 {
		t.Fatalf("unexpected coachee type mix: %+v", types)
	}

	payments := map[PaymentType]int{}
	for _, s := range store.ListSessions() {
		payments[s.PaymentType]++
		if s.CoacheeType == "" {
			t.Fatalf("seeded session missing denormalised coachee type")
		}
		if len(s.Themes) == 0 {
			t.Fatalf("seeded session missing themes")
		}
	}
	if payments[PaymentPaid] != 3 || payments[PaymentPeer] != 1 || payments[PaymentProBono] != 1 {
		t.Fatalf("unexpected payment mix: %+v", payments)
	}
}

func TestSeedDemoSkipsNonEmptyStore(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	mustCreateSource(t, svc, Source{Name: "Existing"})

	seeded, err := svc.SeedDemo(ctx)
	if err != nil {
		t.Fatalf("seed demo: %v", err)
	}
	if seeded {
		t.Fatalf("seeding must be skipped when data exists")
	}
	if got := len(svc.Store().ListSources()); got != 1 {
		t.Fatalf("expected store untouched, got %d sources", got)
	}
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	if _, err := svc.SeedDemo(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	seeded, err := svc.SeedDemo(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatalf("second seed must be a no-op")
	}
	if got := len(svc.Store().ListSessions()); got != 5 {
		t.Fatalf("expected 5 sessions after repeat seed, got %d", got)
	}
}
