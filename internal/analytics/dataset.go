// Package analytics computes dashboard metrics, breakdowns, rankings, and
// per-entity rollups from the coachee, session, and source collections. All
// functions are pure: they read an immutable dataset and return plain result
// values with no ties back to the store.
package analytics

import (
	"coachtrack/pkg/domain"
	"sort"
)

// Dataset is an immutable snapshot of the three collections with lookup
// indexes. Slice order is preserved; rankings group in encounter order.
type Dataset struct {
	Coachees []domain.Coachee
	Sessions []domain.Session
	Sources  []domain.Source

	coacheeByID       map[string]int
	sourceByID        map[string]int
	sessionsByCoachee map[string][]int
}

// NewDataset indexes the supplied collections. The slices are not copied;
// callers must not mutate them while the dataset is in use.
func NewDataset(coachees []domain.Coachee, sessions []domain.Session, sources []domain.Source) *Dataset {
	d := &Dataset{
		Coachees:          coachees,
		Sessions:          sessions,
		Sources:           sources,
		coacheeByID:       make(map[string]int, len(coachees)),
		sourceByID:        make(map[string]int, len(sources)),
		sessionsByCoachee: make(map[string][]int),
	}
	for i, c := range coachees {
		d.coacheeByID[c.ID] = i
	}
	for i, s := range sources {
		d.sourceByID[s.ID] = i
	}
	for i, s := range sessions {
		d.sessionsByCoachee[s.CoacheeID] = append(d.sessionsByCoachee[s.CoacheeID], i)
	}
	return d
}

// FromStore snapshots the collections out of a persistent store. Store
// listings carry no ordering guarantee, so the snapshot is sorted into a
// deterministic encounter order: sessions by date then creation time, the
// other collections by creation time, with the identifier as a final
// tie-break.
func FromStore(store domain.PersistentStore) *Dataset {
	coachees := store.ListCoachees()
	sessions := store.ListSessions()
	sources := store.ListSources()

	sort.Slice(coachees, func(i, j int) bool {
		if !coachees[i].CreatedAt.Equal(coachees[j].CreatedAt) {
			return coachees[i].CreatedAt.Before(coachees[j].CreatedAt)
		}
		return coachees[i].ID < coachees[j].ID
	})
	sort.Slice(sources, func(i, j int) bool {
		if !sources[i].CreatedAt.Equal(sources[j].CreatedAt) {
			return sources[i].CreatedAt.Before(sources[j].CreatedAt)
		}
		return sources[i].ID < sources[j].ID
	})
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].SessionDate.Equal(sessions[j].SessionDate) {
			return sessions[i].SessionDate.Before(sessions[j].SessionDate)
		}
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return NewDataset(coachees, sessions, sources)
}

// Coachee resolves a coachee by identifier.
func (d *Dataset) Coachee(id string) (domain.Coachee, bool) {
	i, ok := d.coacheeByID[id]
	if !ok {
		return domain.Coachee{}, false
	}
	return d.Coachees[i], true
}

// Source resolves a source by identifier.
func (d *Dataset) Source(id string) (domain.Source, bool) {
	i, ok := d.sourceByID[id]
	if !ok {
		return domain.Source{}, false
	}
	return d.Sources[i], true
}

// SessionsFor returns all sessions recorded for a coachee, in dataset order.
func (d *Dataset) SessionsFor(coacheeID string) []domain.Session {
	indexes := d.sessionsByCoachee[coacheeID]
	out := make([]domain.Session, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, d.Sessions[i])
	}
	return out
}

// CoacheeName resolves a coachee's display name, falling back to "Unknown"
// when the referent no longer exists.
func (d *Dataset) CoacheeName(id string) string {
	coachee, ok := d.Coachee(id)
	if !ok {
		return "Unknown"
	}
	return coachee.DisplayName()
}
