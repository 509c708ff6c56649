package analytics

import (
	"sort"
	"strings"
)

// RankedEntry is one row of a ranking table: a label, the number of
// sessions attributed to it, and their summed hours.
type RankedEntry struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

// DefaultRankingLimit caps ranking tables when no explicit limit is given.
const DefaultRankingLimit = 10

// TopClients ranks coachees by their lifetime session count. Rankings are
// computed over the full session history regardless of any dashboard
// filters, so the table stays stable while the user narrows the charts.
// Ties keep first-encountered order.
func TopClients(d *Dataset, limit int) []RankedEntry {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	counts := make(map[string]int)
	hours := make(map[string]float64)
	var order []string
	for _, s := range d.Sessions {
		if _, seen := counts[s.CoacheeID]; !seen {
			order = append(order, s.CoacheeID)
		}
		counts[s.CoacheeID]++
		hours[s.CoacheeID] += s.Duration
	}
	entries := make([]RankedEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, RankedEntry{Name: d.CoacheeName(id), Count: counts[id], Hours: round1(hours[id])})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TopOrganisations ranks organisations by lifetime session count, attributing
// each session to its coachee's organisation. Coachees without an
// organisation are skipped.
func TopOrganisations(d *Dataset, limit int) []RankedEntry {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	counts := make(map[string]int)
	hours := make(map[string]float64)
	var order []string
	for _, s := range d.Sessions {
		coachee, ok := d.Coachee(s.CoacheeID)
		if !ok {
			continue
		}
		org := strings.TrimSpace(coachee.Organisation)
		if org == "" {
			continue
		}
		if _, seen := counts[org]; !seen {
			order = append(order, org)
		}
		counts[org]++
		hours[org] += s.Duration
	}
	entries := make([]RankedEntry, 0, len(order))
	for _, org := range order {
		entries = append(entries, RankedEntry{Name: org, Count: counts[org], Hours: round1(hours[org])})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
