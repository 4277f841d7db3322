package model

import (
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Filter is a conjunction of issue predicates. Zero-valued criteria are
// skipped, so the zero Filter matches everything. The status criterion
// compares against the status derived at the reference date.
type Filter struct {
	Sector     types.SectorID
	Discipline types.DisciplineID
	Severity   types.Severity // 0 means no constraint
	Bottleneck *bool
	Status     types.IssueStatus // "" means no constraint
}

// IsZero reports whether no criterion is set
func (f Filter) IsZero() bool {
	return f.Sector == "" && f.Discipline == "" && f.Severity == 0 &&
		f.Bottleneck == nil && f.Status == ""
}

// Match reports whether the issue satisfies every active criterion
func (f Filter) Match(issue *Issue, today types.Date) bool {
	if f.Sector != "" && issue.Sector != f.Sector {
		return false
	}
	if f.Discipline != "" && issue.Discipline != f.Discipline {
		return false
	}
	if f.Severity != 0 && issue.Severity != f.Severity {
		return false
	}
	if f.Bottleneck != nil && issue.Bottleneck != *f.Bottleneck {
		return false
	}
	if f.Status != "" && issue.StatusAt(today) != f.Status {
		return false
	}
	return true
}

// Apply returns the issues matching the filter, preserving input order.
// The input slice is never mutated; ordering stays whatever the fetch
// produced (typically createdAt descending).
func (f Filter) Apply(issues []*Issue, today types.Date) []*Issue {
	if f.IsZero() {
		return issues
	}

	matched := make([]*Issue, 0, len(issues))
	for _, issue := range issues {
		if f.Match(issue, today) {
			matched = append(matched, issue)
		}
	}
	return matched
}
