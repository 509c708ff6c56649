package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"coachtrack/internal/analytics"
)

var csvHeader = []string{"date", "coachee", "coachee_type", "duration_hours", "payment_type", "themes"}

func render(format Format, d *analytics.Dataset, dashboard analytics.Dashboard) ([]byte, error) {
	switch format {
	case FormatJSON:
		payload, err := json.MarshalIndent(dashboard, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal dashboard: %w", err)
		}
		return payload, nil
	case FormatCSV:
		return renderCSV(d, dashboard)
	default:
		return nil, fmt.Errorf("unsupported report format %s", format)
	}
}

// renderCSV writes the filtered session log, one row per session.
func renderCSV(d *analytics.Dataset, dashboard analytics.Dashboard) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, s := range dashboard.Sessions {
		row := []string{
			s.SessionDate.Format("2006-01-02"),
			d.CoacheeName(s.CoacheeID),
			string(s.CoacheeType),
			fmt.Sprintf("%g", s.Duration),
			string(s.PaymentType),
			strings.Join(s.Themes, "; "),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
