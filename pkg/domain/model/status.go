package model

import (
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Evaluation is the derived state of an issue at a reference date.
// DaysLate is only defined when a deadline exists and the issue is not
// closed: positive means days past the deadline, zero or negative means
// the issue is still on time (informational, never shown as late).
type Evaluation struct {
	Status   types.IssueStatus
	DaysLate *int
}

// Evaluate derives the status of an issue at the given reference date.
// This is the single authoritative implementation of the overdue rule;
// list views, the dashboard and filters all delegate here.
//
// A recorded resolution date always wins, even over a missed deadline.
// A deadline of exactly today is still on time. Malformed dates are
// treated as absent, never as errors.
func Evaluate(issue *Issue, today types.Date) Evaluation {
	if issue.ResolvedOn.Valid() {
		return Evaluation{Status: types.IssueStatusClosed}
	}
	if !issue.DueOn.Valid() {
		return Evaluation{Status: types.IssueStatusOpen}
	}

	delta, ok := today.DaysSince(issue.DueOn)
	if !ok {
		return Evaluation{Status: types.IssueStatusOpen}
	}

	status := types.IssueStatusOpen
	if delta > 0 {
		status = types.IssueStatusOverdue
	}
	return Evaluation{Status: status, DaysLate: &delta}
}

// StatusAt returns only the derived status at the given reference date
func (i *Issue) StatusAt(today types.Date) types.IssueStatus {
	return Evaluate(i, today).Status
}
