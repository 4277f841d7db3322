package model

import (
	"sort"

	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// SectorCount holds the open-issue count for one configured sector
type SectorCount struct {
	ID    types.SectorID
	Name  string
	Count int
}

// Summary holds the dashboard aggregation. Overdue is recomputed against
// the reference date at evaluation time, so the summary is time-dependent,
// not purely a function of stored data.
type Summary struct {
	Total       int
	Open        int
	Closed      int
	Bottlenecks int // bottleneck-flagged issues that are still open
	Overdue     int

	ByDiscipline map[types.DisciplineID]int // open issues per discipline
	BySeverity   map[types.Severity]int     // open issues per severity
	Sectors      []SectorCount              // open issues per configured sector, descending
}

// Summarize aggregates the issue collection for the dashboard. Inputs are
// never mutated. Every configured discipline and sector appears in the
// output even with a zero count; sector ties keep the configured order.
// Issues whose sector is not in the configuration are counted in the
// totals but excluded from the per-sector breakdown.
func Summarize(issues []*Issue, site *SiteConfig, today types.Date) *Summary {
	s := &Summary{
		Total:        len(issues),
		ByDiscipline: make(map[types.DisciplineID]int, len(site.Disciplines)),
		BySeverity:   make(map[types.Severity]int, 3),
	}

	for _, dis := range site.Disciplines {
		s.ByDiscipline[types.DisciplineID(dis.ID)] = 0
	}
	for _, sev := range types.Severities() {
		s.BySeverity[sev] = 0
	}

	bySector := make(map[types.SectorID]int, len(site.Sectors))
	for _, issue := range issues {
		ev := Evaluate(issue, today)
		if ev.Status == types.IssueStatusClosed {
			s.Closed++
			continue
		}

		s.Open++
		if ev.Status == types.IssueStatusOverdue {
			s.Overdue++
		}
		if issue.Bottleneck {
			s.Bottlenecks++
		}
		s.ByDiscipline[issue.Discipline]++
		s.BySeverity[issue.Severity]++
		bySector[issue.Sector]++
	}

	s.Sectors = make([]SectorCount, 0, len(site.Sectors))
	for _, sec := range site.Sectors {
		s.Sectors = append(s.Sectors, SectorCount{
			ID:    types.SectorID(sec.ID),
			Name:  sec.Name,
			Count: bySector[types.SectorID(sec.ID)],
		})
	}
	sort.SliceStable(s.Sectors, func(i, j int) bool {
		return s.Sectors[i].Count > s.Sectors[j].Count
	})

	return s
}
