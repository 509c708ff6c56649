package core

import (
	"coachtrack/pkg/domain"
	"context"
	"fmt"
)

// NewSessionIntegrityRule returns the in-transaction rule validating session
// payloads: positive duration, at least one theme, and a known payment type.
func NewSessionIntegrityRule() domain.Rule {
	return sessionIntegrityRule{}
}

type sessionIntegrityRule struct{}

func (sessionIntegrityRule) Name() string { return "session_integrity" }

var knownPaymentTypes = map[domain.PaymentType]struct{}{
	domain.PaymentPaid:    {},
	domain.PaymentPeer:    {},
	domain.PaymentProBono: {},
}

func (sessionIntegrityRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntitySession || change.Action == domain.ActionDelete {
			continue
		}
		session, ok := change.After.(domain.Session)
		if !ok {
			continue
		}
		if session.Duration <= 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "session_integrity",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("session duration must be positive, got %v", session.Duration),
				Entity:   domain.EntitySession,
				EntityID: session.ID,
			})
		}
		if len(session.Themes) == 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "session_integrity",
				Severity: domain.SeverityBlock,
				Message:  "session requires at least one theme",
				Entity:   domain.EntitySession,
				EntityID: session.ID,
			})
		}
		if _, known := knownPaymentTypes[session.PaymentType]; !known {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "session_integrity",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("unknown payment type %q", session.PaymentType),
				Entity:   domain.EntitySession,
				EntityID: session.ID,
			})
		}
	}
	return res, nil
}

// DefaultRulesEngine returns an engine preloaded with the core validation rules.
func DefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewSourceNameRule())
	engine.Register(NewSessionIntegrityRule())
	return engine
}
