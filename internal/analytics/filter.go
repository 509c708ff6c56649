package analytics

import (
	"coachtrack/pkg/domain"
	"time"
)

// Date range keywords accepted by the dashboard filters. Anything else,
// including the empty string, applies no lower bound.
const (
	RangeThisMonth   = "thisMonth"
	RangeThisQuarter = "thisQuarter"
	RangeThisYear    = "thisYear"
)

// CoacheeTypeAll disables coachee-type filtering, same as leaving it empty.
const CoacheeTypeAll = "all"

// Params narrows the session set before aggregation. Filters compose by
// logical AND and each is independently optional.
type Params struct {
	DateRange    string               `json:"date_range,omitempty"`
	CoacheeType  string               `json:"coachee_type,omitempty"`
	PaymentTypes []domain.PaymentType `json:"payment_types,omitempty"`
}

// rangeLowerBound computes the inclusive lower bound for a date range keyword
// relative to now. A zero time means no bound.
func rangeLowerBound(dateRange string, now time.Time) time.Time {
	switch dateRange {
	case RangeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case RangeThisQuarter:
		quarterStart := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, now.Location())
	case RangeThisYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// FilterSessions returns the sessions matching params, preserving input
// order. It is pure, non-mutating, and idempotent: filtering an already
// filtered result with the same params changes nothing.
func FilterSessions(sessions []domain.Session, params Params, now time.Time) []domain.Session {
	bound := rangeLowerBound(params.DateRange, now)

	byType := params.CoacheeType != "" && params.CoacheeType != CoacheeTypeAll
	allowed := make(map[domain.PaymentType]struct{}, len(params.PaymentTypes))
	for _, p := range params.PaymentTypes {
		allowed[p] = struct{}{}
	}

	out := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if !bound.IsZero() && session.SessionDate.Before(bound) {
			continue
		}
		// CoacheeType is the denormalized snapshot stamped at creation; it is
		// read as-is even if the live coachee's type has since changed.
		if byType && string(session.CoacheeType) != params.CoacheeType {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[session.PaymentType]; !ok {
				continue
			}
		}
		out = append(out, session)
	}
	return out
}
