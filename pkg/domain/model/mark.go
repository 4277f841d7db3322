package model

import (
	"math"
)

// MarkTolerancePercent is the selection radius around an existing mark,
// in page-percentage units. A click strictly closer than this selects the
// mark instead of creating a new one.
const MarkTolerancePercent = 2.0

// MarkPlacement is the outcome of resolving a click on a rendered page.
// When Selected is nil the click should create a new mark at Position.
type MarkPlacement struct {
	Selected *Issue
	Position Position
}

// ResolveMark decides whether a click lands on an existing mark or should
// place a new one. Only marks on the click's page are candidates; page
// scoping is strict, a mark within tolerance on another page never
// matches. Among candidates within tolerance the closest wins; exact ties
// keep the first found, an accepted approximation since the radius is
// small and overlapping marks are rare. Flat O(n) scan: pages hold tens
// of marks, not thousands, so no spatial index is warranted.
func ResolveMark(click Position, issues []*Issue) MarkPlacement {
	var selected *Issue
	best := math.Inf(1)

	for _, issue := range issues {
		if issue.Position.Page != click.Page {
			continue
		}
		dx := click.X - issue.Position.X
		dy := click.Y - issue.Position.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < MarkTolerancePercent && dist < best {
			selected = issue
			best = dist
		}
	}

	return MarkPlacement{Selected: selected, Position: click}
}
