// Package core exposes the transactional service, validation rules, and
// storage selection used by higher layers of coachtrack.
package core

import "coachtrack/pkg/domain"

type (
	EntityType         = domain.EntityType
	CoacheeType        = domain.CoacheeType
	PaymentType        = domain.PaymentType
	Severity           = domain.Severity
	Base               = domain.Base
	Coachee            = domain.Coachee
	Session            = domain.Session
	Source             = domain.Source
	Identity           = domain.Identity
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	RulesEngine        = domain.RulesEngine
	Rule               = domain.Rule
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

const (
	EntityCoachee = domain.EntityCoachee
	EntitySession = domain.EntitySession
	EntitySource  = domain.EntitySource
)

const (
	CoacheeIndividual = domain.CoacheeIndividual
	CoacheeTeam       = domain.CoacheeTeam
	CoacheeGroup      = domain.CoacheeGroup
)

const (
	PaymentPaid    = domain.PaymentPaid
	PaymentPeer    = domain.PaymentPeer
	PaymentProBono = domain.PaymentProBono
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)

// NewRulesEngine mirrors domain.NewRulesEngine for callers that only import core.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}
