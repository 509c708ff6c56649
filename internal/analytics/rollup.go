package analytics

import (
	"sort"
	"time"

	"coachtrack/pkg/domain"
)

// AverageHours projects total coached hours onto weekly, monthly and yearly
// rates based on the span between the first and last session.
type AverageHours struct {
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
	Year  float64 `json:"year"`
}

// Average day lengths used when projecting a session span onto calendar
// periods.
const (
	daysPerWeek  = 7.0
	daysPerMonth = 30.44
	daysPerYear  = 365.25
)

// ComputeAverageHours derives weekly, monthly and yearly hour rates from the
// given sessions. Fewer than two sessions yields all zeroes since a single
// point in time has no meaningful rate. The span is floored at one day so a
// same-day pair does not divide by zero.
func ComputeAverageHours(sessions []domain.Session) AverageHours {
	if len(sessions) < 2 {
		return AverageHours{}
	}
	min, max, total := sessionExtent(sessions)
	days := daySpan(min, max)
	if days < 1 {
		days = 1
	}
	return AverageHours{
		Week:  round1(total / (days / daysPerWeek)),
		Month: round1(total / (days / daysPerMonth)),
		Year:  round1(total / (days / daysPerYear)),
	}
}

// CoacheeStats summarizes a single coachee's engagement.
type CoacheeStats struct {
	Sessions       int     `json:"sessions"`
	Hours          float64 `json:"hours"`
	EngagementDays int     `json:"engagementDays"`
}

// ComputeCoacheeStats totals a coachee's sessions, hours and engagement span
// in whole days. Fewer than two sessions reports zero engagement days.
func ComputeCoacheeStats(d *Dataset, coacheeID string) CoacheeStats {
	sessions := d.SessionsFor(coacheeID)
	stats := CoacheeStats{Sessions: len(sessions)}
	for _, s := range sessions {
		stats.Hours += s.Duration
	}
	stats.Hours = round1(stats.Hours)
	if len(sessions) >= 2 {
		min, max, _ := sessionExtent(sessions)
		stats.EngagementDays = int(daySpan(min, max))
	}
	return stats
}

// OrganisationStats summarizes one organisation across its coachees.
type OrganisationStats struct {
	Coachees int             `json:"coachees"`
	Sessions int             `json:"sessions"`
	Sources  []string        `json:"sources"`
	Members  []domain.Coachee `json:"members"`
}

// ComputeOrganisationStats gathers the coachees belonging to the named
// organisation, their combined session count, and the distinct source names
// that brought them in.
func ComputeOrganisationStats(d *Dataset, organisation string) OrganisationStats {
	stats := OrganisationStats{}
	seenSources := make(map[string]bool)
	for _, c := range d.Coachees {
		if c.Organisation != organisation {
			continue
		}
		stats.Coachees++
		stats.Members = append(stats.Members, c)
		stats.Sessions += len(d.SessionsFor(c.ID))
		if c.SourceID != nil {
			if source, ok := d.Source(*c.SourceID); ok && !seenSources[source.Name] {
				seenSources[source.Name] = true
				stats.Sources = append(stats.Sources, source.Name)
			}
		}
	}
	return stats
}

// SourceStats summarizes one acquisition source across its coachees.
type SourceStats struct {
	Coachees      int             `json:"coachees"`
	Sessions      int             `json:"sessions"`
	Organisations []string        `json:"organisations"`
	Members       []domain.Coachee `json:"members"`
}

// ComputeSourceStats gathers the coachees attributed to the given source,
// their combined session count, and the distinct organisations they belong
// to.
func ComputeSourceStats(d *Dataset, sourceID string) SourceStats {
	stats := SourceStats{}
	seenOrgs := make(map[string]bool)
	for _, c := range d.Coachees {
		if c.SourceID == nil || *c.SourceID != sourceID {
			continue
		}
		stats.Coachees++
		stats.Members = append(stats.Members, c)
		stats.Sessions += len(d.SessionsFor(c.ID))
		if c.Organisation != "" && !seenOrgs[c.Organisation] {
			seenOrgs[c.Organisation] = true
			stats.Organisations = append(stats.Organisations, c.Organisation)
		}
	}
	return stats
}

// OrganisationSummary is one row of the organisations table.
type OrganisationSummary struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Coachees int     `json:"coachees"`
	Sessions int     `json:"sessions"`
	Hours    float64 `json:"hours"`
}

// AllOrganisations builds the organisations table: one row per distinct
// organisation with coachee count, session count, total hours and a country
// taken from the first coachee encountered for that organisation. Rows keep
// first-encountered order.
func AllOrganisations(d *Dataset) []OrganisationSummary {
	index := make(map[string]int)
	var rows []OrganisationSummary
	for _, c := range d.Coachees {
		org := c.Organisation
		if org == "" {
			continue
		}
		i, ok := index[org]
		if !ok {
			i = len(rows)
			index[org] = i
			rows = append(rows, OrganisationSummary{Name: org, Country: c.Country})
		}
		rows[i].Coachees++
		for _, s := range d.SessionsFor(c.ID) {
			rows[i].Sessions++
			rows[i].Hours += s.Duration
		}
	}
	for i := range rows {
		rows[i].Hours = round1(rows[i].Hours)
	}
	return rows
}

// SortedYears returns the keys of a yearly breakdown in ascending order.
func SortedYears(yearly map[int]float64) []int {
	years := make([]int, 0, len(yearly))
	for y := range yearly {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sessionExtent(sessions []domain.Session) (min, max time.Time, total float64) {
	for i, s := range sessions {
		if i == 0 || s.SessionDate.Before(min) {
			min = s.SessionDate
		}
		if i == 0 || s.SessionDate.After(max) {
			max = s.SessionDate
		}
		total += s.Duration
	}
	return min, max, total
}
