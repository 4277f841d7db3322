package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Position locates a mark on a page of the sector's reference floor plan.
// X and Y are percentages of the rendered page width and height (0-100),
// so a mark keeps its place at any zoom level. Page is 1-based.
type Position struct {
	X    float64
	Y    float64
	Page int
}

// Validate validates the position
func (p Position) Validate() error {
	if p.X < 0 || p.X > 100 {
		return goerr.New("x coordinate must be a percentage between 0 and 100",
			goerr.V("x", p.X))
	}
	if p.Y < 0 || p.Y > 100 {
		return goerr.New("y coordinate must be a percentage between 0 and 100",
			goerr.V("y", p.Y))
	}
	if p.Page < 1 {
		return goerr.New("page index must be 1 or greater",
			goerr.V("page", p.Page))
	}
	return nil
}

// Issue represents a tracked problem ("incêndio") marked on a sector's
// floor plan. Status is never stored on the record; it is derived from
// ResolvedOn and DueOn by Evaluate.
type Issue struct {
	ID          types.IssueID
	Sector      types.SectorID
	Discipline  types.DisciplineID
	Severity    types.Severity
	Bottleneck  bool // blocks dependent work, independent of status
	Description string
	Responsible string
	OccurredOn  types.Date // when the issue appeared
	DueOn       types.Date // target resolution date; absent means no deadline tracking
	ResolvedOn  types.Date // presence is the sole signal of closure
	CreatedBy   types.UserID
	Position    Position
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewIssue creates a new Issue instance with a generated ID and creation
// timestamps. OccurredOn defaults to today when absent.
func NewIssue(sector types.SectorID, discipline types.DisciplineID, severity types.Severity, pos Position, createdBy types.UserID) (*Issue, error) {
	if sector == "" {
		return nil, goerr.New("sector is required")
	}
	if discipline == "" {
		return nil, goerr.New("discipline is required")
	}
	if !severity.IsValid() {
		return nil, goerr.New("severity must be 1, 2 or 3",
			goerr.V("severity", severity))
	}
	if err := pos.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mark position")
	}

	now := time.Now()
	return &Issue{
		ID:         types.NewIssueID(),
		Sector:     sector,
		Discipline: discipline,
		Severity:   severity,
		OccurredOn: types.DateOf(now),
		CreatedBy:  createdBy,
		Position:   pos,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsResolved reports whether a resolution date is recorded
func (i *Issue) IsResolved() bool {
	return i.ResolvedOn.Valid()
}

// Touch refreshes the update timestamp
func (i *Issue) Touch() {
	i.UpdatedAt = time.Now()
}
