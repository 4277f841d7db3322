package types

import (
	"fmt"
)

// IssueStatus represents the derived status of an issue. It is never
// stored; it is always computed from the resolution and deadline dates.
type IssueStatus string

const (
	IssueStatusOpen    IssueStatus = "open"
	IssueStatusOverdue IssueStatus = "overdue"
	IssueStatusClosed  IssueStatus = "closed"
)

// String returns the string representation of the status
func (s IssueStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusOverdue, IssueStatusClosed:
		return true
	default:
		return false
	}
}

// Severity represents the ordinal impact rating of an issue, 1 (low) to 3 (high)
type Severity int

const (
	SeverityLow    Severity = 1
	SeverityMedium Severity = 2
	SeverityHigh   Severity = 3
)

// Int returns the int representation
func (s Severity) Int() int {
	return int(s)
}

// String returns the string representation
func (s Severity) String() string {
	return fmt.Sprintf("%d", int(s))
}

// IsValid checks if the severity is within the allowed range
func (s Severity) IsValid() bool {
	return s >= SeverityLow && s <= SeverityHigh
}

// Name returns the display label used on lists and notifications
func (s Severity) Name() string {
	switch s {
	case SeverityLow:
		return "Pequeno"
	case SeverityMedium:
		return "Médio"
	case SeverityHigh:
		return "Grande"
	default:
		return "Desconhecido"
	}
}

// Severities lists all valid severity values in ascending order
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}
