package analytics

import (
	"coachtrack/pkg/domain"
	"math"
	"time"
)

// Weekdays enumerates the weekday labels in chart axis order.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PaymentTypeBreakdown counts sessions per payment type. Only observed
// labels appear.
func PaymentTypeBreakdown(sessions []domain.Session) map[string]int {
	breakdown := make(map[string]int)
	for _, s := range sessions {
		breakdown[string(s.PaymentType)]++
	}
	return breakdown
}

// WeekdayBreakdown counts sessions per weekday name. All seven labels are
// pre-seeded to zero so the chart axis is stable even with no data.
func WeekdayBreakdown(sessions []domain.Session) map[string]int {
	breakdown := make(map[string]int, len(Weekdays))
	for _, day := range Weekdays {
		breakdown[day] = 0
	}
	for _, s := range sessions {
		breakdown[s.SessionDate.Weekday().String()]++
	}
	return breakdown
}

// YearlyHours sums session duration per calendar year. Only years with at
// least one session appear; consumers sort the keys.
func YearlyHours(sessions []domain.Session) map[int]float64 {
	yearly := make(map[int]float64)
	for _, s := range sessions {
		yearly[s.SessionDate.Year()] += s.Duration
	}
	return yearly
}

// AgeGroupBreakdown counts individual coachees per age group, skipping
// records without the field set.
func AgeGroupBreakdown(coachees []domain.Coachee) map[string]int {
	breakdown := make(map[string]int)
	for _, c := range coachees {
		if c.Type != domain.CoacheeIndividual || c.AgeGroup == "" {
			continue
		}
		breakdown[c.AgeGroup]++
	}
	return breakdown
}

// SexBreakdown counts individual coachees per recorded sex, skipping records
// without the field set.
func SexBreakdown(coachees []domain.Coachee) map[string]int {
	breakdown := make(map[string]int)
	for _, c := range coachees {
		if c.Type != domain.CoacheeIndividual || c.Sex == "" {
			continue
		}
		breakdown[c.Sex]++
	}
	return breakdown
}

// SourceHours sums session hours per source name, joining each session
// through its coachee to the coachee's source. Sessions whose coachee or
// source cannot be resolved are silently excluded.
func SourceHours(d *Dataset, sessions []domain.Session) map[string]float64 {
	hours := make(map[string]float64)
	for _, s := range sessions {
		coachee, ok := d.Coachee(s.CoacheeID)
		if !ok || coachee.SourceID == nil {
			continue
		}
		source, ok := d.Source(*coachee.SourceID)
		if !ok {
			continue
		}
		hours[source.Name] += s.Duration
	}
	return hours
}

// Percentage computes count/total*100 rounded to one decimal; a zero total
// yields 0 rather than an error.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(count) / float64(total) * 100)
}

// Percentages converts a count breakdown into percentage-of-total form.
func Percentages(counts map[string]int) map[string]float64 {
	total := 0
	for _, count := range counts {
		total += count
	}
	out := make(map[string]float64, len(counts))
	for label, count := range counts {
		out[label] = Percentage(count, total)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func daySpan(min, max time.Time) float64 {
	return max.Sub(min).Hours() / 24
}
