package core

import (
	"coachtrack/pkg/domain"
	"context"
	"fmt"
	"strings"
)

// NewSourceNameRule returns the in-transaction rule enforcing case-insensitive
// source name uniqueness at creation time. Renames of existing sources are not
// re-checked.
func NewSourceNameRule() domain.Rule {
	return sourceNameRule{}
}

type sourceNameRule struct{}

func (sourceNameRule) Name() string { return "source_name_unique" }

func (sourceNameRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntitySource || change.Action != domain.ActionCreate {
			continue
		}
		created, ok := change.After.(domain.Source)
		if !ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(created.Name))
		for _, existing := range view.ListSources() {
			if existing.ID == created.ID {
				continue
			}
			if strings.ToLower(strings.TrimSpace(existing.Name)) == name {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "source_name_unique",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("source name %q already exists", created.Name),
					Entity:   domain.EntitySource,
					EntityID: created.ID,
				})
				break
			}
		}
	}
	return res, nil
}
