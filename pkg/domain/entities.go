// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by coachtrack.
package domain

import (
	"strings"
	"time"
)

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityCoachee identifies a coachee record.
	EntityCoachee EntityType = "coachee"
	// EntitySession identifies a coaching session record.
	EntitySession EntityType = "session"
	// EntitySource identifies a referral source record.
	EntitySource EntityType = "source"
)

// CoacheeType distinguishes the three engagement shapes a coachee can take.
type CoacheeType string

// Canonical coachee types. The value stored on a session is a snapshot taken
// at session creation and is not re-derived afterwards.
const (
	CoacheeIndividual CoacheeType = "Individual"
	CoacheeTeam       CoacheeType = "Team"
	CoacheeGroup      CoacheeType = "Group"
)

// PaymentType enumerates how a session is remunerated.
type PaymentType string

// Canonical payment types used for filtering and breakdowns.
const (
	PaymentPaid    PaymentType = "Paid"
	PaymentPeer    PaymentType = "Peer"
	PaymentProBono PaymentType = "Pro Bono"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Source represents a referral channel through which coachees arrive.
// Names are unique case-insensitively at creation time; renames are not
// re-checked against existing records.
type Source struct {
	Base
	Name    string `json:"name"`
	Country string `json:"country"`
	Website string `json:"website"`
}

// Coachee represents a coaching client. Type selects which of the variant
// field groups is meaningful: Individual records carry personal fields,
// Team and Group records carry the collective fields.
type Coachee struct {
	Base
	Type CoacheeType `json:"type"`

	// Individual fields.
	FirstName  string `json:"first_name,omitempty"`
	SecondName string `json:"second_name,omitempty"`
	AgeGroup   string `json:"age_group,omitempty"`
	Sex        string `json:"sex,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Occupation string `json:"occupation,omitempty"`

	// Team and Group fields.
	GroupTeamName   string   `json:"group_team_name,omitempty"`
	NumParticipants int      `json:"num_participants,omitempty"`
	Members         []string `json:"members,omitempty"`

	// Shared across all variants. Organisation is a free-text join key;
	// SourceID may dangle after the referenced source is deleted.
	Organisation string  `json:"organisation,omitempty"`
	City         string  `json:"city,omitempty"`
	Country      string  `json:"country,omitempty"`
	SourceID     *string `json:"source_id"`
}

// DisplayName renders the human-readable name for a coachee. Individuals
// combine first and second name; collective variants use the group or team
// name with a fallback when it is blank.
func (c Coachee) DisplayName() string {
	if c.Type == CoacheeIndividual {
		return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.SecondName))
	}
	if name := strings.TrimSpace(c.GroupTeamName); name != "" {
		return name
	}
	return "Unnamed Group/Team"
}

// Session represents a single coaching session. CoacheeType is copied from
// the referenced coachee when the session is created; CoacheeID may dangle
// after the coachee is deleted and the session remains aggregable.
type Session struct {
	Base
	CoacheeID   string      `json:"coachee_id"`
	CoacheeType CoacheeType `json:"coachee_type"`
	SessionDate time.Time   `json:"session_date"`
	Duration    float64     `json:"duration"`
	Themes      []string    `json:"themes"`
	PaymentType PaymentType `json:"payment_type"`
	Notes       string      `json:"notes,omitempty"`
}

// Identity records the signed-in user persisted beside the collections.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
