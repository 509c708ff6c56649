package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coachtrack/pkg/domain"
)

func TestSourceNameRuleBlocksDuplicates(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	mustCreateSource(t, svc, Source{Name: "LinkedIn Referral"})

	_, res, err := svc.CreateSource(ctx, Source{Name: "  linkedin referral "})
	if err == nil {
		t.Fatalf("expected duplicate name to be blocked")
	}
	var rve RuleViolationError
	if !errors.As(err, &rve) {
		t.Fatalf("expected RuleViolationError, got %T", err)
	}
	if !res.HasBlocking() {
		t.Fatalf("expected blocking violation in result")
	}
	if len(svc.Store().ListSources()) != 1 {
		t.Fatalf("blocked create must not commit")
	}
}

func TestSourceNameRuleAllowsDistinctNames(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	mustCreateSource(t, svc, Source{Name: "LinkedIn Referral"})
	mustCreateSource(t, svc, Source{Name: "Word of Mouth"})
	if len(svc.Store().ListSources()) != 2 {
		t.Fatalf("expected both sources persisted")
	}
}

func TestSourceNameRuleIgnoresRenames(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	mustCreateSource(t, svc, Source{Name: "Conference"})
	second := mustCreateSource(t, svc, Source{Name: "Meetup"})

	// Renames are deliberately not re-checked against existing names.
	renamed, _, err := svc.UpdateSource(ctx, second.ID, func(s *Source) error {
		s.Name = "Conference"
		return nil
	})
	if err != nil {
		t.Fatalf("rename should not be blocked: %v", err)
	}
	if renamed.Name != "Conference" {
		t.Fatalf("expected rename applied")
	}
}

func TestSessionIntegrityRuleViolations(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	coachee := mustCreateCoachee(t, svc, Coachee{Type: CoacheeIndividual, FirstName: "Aarav"})

	_, res, err := svc.CreateSession(ctx, Session{
		CoacheeID:   coachee.ID,
		Duration:    0,
		Themes:      nil,
		PaymentType: "Barter",
	})
	if err == nil {
		t.Fatalf("expected invalid session to be blocked")
	}
	if len(res.Violations) != 3 {
		t.Fatalf("expected 3 violations (duration, themes, payment), got %d: %+v", len(res.Violations), res.Violations)
	}
	for _, v := range res.Violations {
		if v.Severity != SeverityBlock {
			t.Fatalf("expected blocking severity, got %s", v.Severity)
		}
		if v.Rule != "session_integrity" {
			t.Fatalf("unexpected rule name %s", v.Rule)
		}
	}
}

func TestSessionIntegrityRuleAcceptsValidSession(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	coachee := mustCreateCoachee(t, svc, Coachee{Type: CoacheeIndividual, FirstName: "Priya"})
	for _, payment := range []PaymentType{PaymentPaid, PaymentPeer, PaymentProBono} {
		session := validSession(coachee.ID)
		session.PaymentType = payment
		mustCreateSession(t, svc, session)
	}
	if len(svc.Store().ListSessions()) != 3 {
		t.Fatalf("expected all valid payment types accepted")
	}
}

func TestSessionIntegrityRuleChecksUpdates(t *testing.T) {
	svc := NewInMemoryService(DefaultRulesEngine())
	ctx := context.Background()
	coachee := mustCreateCoachee(t, svc, Coachee{Type: CoacheeIndividual, FirstName: "Dev"})
	session := mustCreateSession(t, svc, validSession(coachee.ID))

	_, _, err := svc.UpdateSession(ctx, session.ID, func(s *Session) error {
		s.Duration = -1
		return nil
	})
	if err == nil {
		t.Fatalf("expected update with negative duration to be blocked")
	}
	kept, _ := svc.Store().GetSession(session.ID)
	if kept.Duration != 1.5 {
		t.Fatalf("blocked update must not commit, got duration %v", kept.Duration)
	}
}

func TestRuleViolationMessages(t *testing.T) {
	engine := DefaultRulesEngine()
	res, err := engine.Evaluate(context.Background(), emptyView{}, []domain.Change{{
		Entity: domain.EntitySession,
		Action: domain.ActionCreate,
		After:  domain.Session{Duration: 0, PaymentType: "Barter"},
	}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	var sawPayment bool
	for _, v := range res.Violations {
		if strings.Contains(v.Message, "Barter") {
			sawPayment = true
		}
	}
	if !sawPayment {
		t.Fatalf("expected payment type named in violation, got %+v", res.Violations)
	}
}

type emptyView struct{}

func (emptyView) ListCoachees() []domain.Coachee              { return nil }
func (emptyView) ListSessions() []domain.Session              { return nil }
func (emptyView) ListSources() []domain.Source                { return nil }
func (emptyView) FindCoachee(string) (domain.Coachee, bool)   { return domain.Coachee{}, false }
func (emptyView) FindSession(string) (domain.Session, bool)   { return domain.Session{}, false }
func (emptyView) FindSource(string) (domain.Source, bool)     { return domain.Source{}, false }
