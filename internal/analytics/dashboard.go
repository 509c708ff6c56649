package analytics

import (
	"time"

	"coachtrack/pkg/domain"
)

// Dashboard bundles every aggregate the overview screen renders, computed in
// one pass over a dataset. Breakdowns and rollups respect the filter params;
// the ranking tables intentionally cover the full history.
type Dashboard struct {
	TotalSessions        int                `json:"totalSessions"`
	TotalHours           float64            `json:"totalHours"`
	TotalClients         int                `json:"totalClients"`
	AvgSessionsPerClient float64            `json:"avgSessionsPerClient"`
	PaymentTypes         map[string]int     `json:"paymentTypes"`
	Weekdays             map[string]int     `json:"weekdays"`
	YearlyHours          map[int]float64    `json:"yearlyHours"`
	AgeGroups            map[string]int     `json:"ageGroups"`
	Sexes                map[string]int     `json:"sexes"`
	SourceHours          map[string]float64 `json:"sourceHours"`
	AverageHours         AverageHours       `json:"averageHours"`
	TopClients           []RankedEntry      `json:"topClients"`
	TopOrganisations     []RankedEntry      `json:"topOrganisations"`
	Sessions             []domain.Session   `json:"sessions"`
}

// BuildDashboard filters the dataset's sessions by params relative to now and
// computes the full set of dashboard aggregates.
func BuildDashboard(d *Dataset, params Params, now time.Time) Dashboard {
	sessions := FilterSessions(d.Sessions, params, now)

	totalHours := 0.0
	clients := make(map[string]bool)
	for _, s := range sessions {
		totalHours += s.Duration
		clients[s.CoacheeID] = true
	}

	avgPerClient := 0.0
	if len(clients) > 0 {
		avgPerClient = round1(float64(len(sessions)) / float64(len(clients)))
	}

	return Dashboard{
		TotalSessions:        len(sessions),
		TotalHours:           round1(totalHours),
		TotalClients:         len(clients),
		AvgSessionsPerClient: avgPerClient,
		PaymentTypes:         PaymentTypeBreakdown(sessions),
		Weekdays:             WeekdayBreakdown(sessions),
		YearlyHours:          YearlyHours(sessions),
		AgeGroups:            AgeGroupBreakdown(d.Coachees),
		Sexes:                SexBreakdown(d.Coachees),
		SourceHours:          SourceHours(d, sessions),
		AverageHours:         ComputeAverageHours(sessions),
		TopClients:           TopClients(d, DefaultRankingLimit),
		TopOrganisations:     TopOrganisations(d, DefaultRankingLimit),
		Sessions:             sessions,
	}
}
