package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

func testSite() *model.SiteConfig {
	return &model.SiteConfig{
		Sectors: []model.Sector{
			{ID: "terreo", Name: "Térreo"},
			{ID: "subsolo", Name: "Subsolo"},
			{ID: "cobertura", Name: "Cobertura"},
		},
		Disciplines: []model.Discipline{
			{ID: "civil", Name: "Civil"},
			{ID: "eletrica", Name: "Elétrica"},
		},
	}
}

func TestSummarize(t *testing.T) {
	today := types.Date("2024-01-15")
	site := testSite()

	t.Run("Empty collection yields zeroed breakdowns", func(t *testing.T) {
		s := model.Summarize(nil, site, today)
		gt.Equal(t, 0, s.Total)
		gt.Equal(t, 0, s.Open)
		gt.Equal(t, 0, s.Closed)
		gt.Equal(t, 0, s.Overdue)
		gt.Equal(t, 0, s.Bottlenecks)

		// Configured entries appear even with zero counts
		gt.Equal(t, 2, len(s.ByDiscipline))
		gt.Equal(t, 0, s.ByDiscipline["civil"])
		gt.Equal(t, 3, len(s.BySeverity))
		gt.Equal(t, 3, len(s.Sectors))
		for _, sc := range s.Sectors {
			gt.Equal(t, 0, sc.Count)
		}
	})

	t.Run("Counts split by derived status", func(t *testing.T) {
		issues := buildIssues(t) // 1 overdue, 2 open, 1 closed
		s := model.Summarize(issues, site, today)

		gt.Equal(t, 4, s.Total)
		gt.Equal(t, 3, s.Open)
		gt.Equal(t, 1, s.Closed)
		gt.Equal(t, 1, s.Overdue)
		gt.Equal(t, s.Total, s.Open+s.Closed)

		// Closed bottleneck does not count
		gt.Equal(t, 1, s.Bottlenecks)

		// Breakdowns cover open issues only
		gt.Equal(t, 2, s.ByDiscipline["eletrica"])
		gt.Equal(t, 1, s.ByDiscipline["civil"])
		gt.Equal(t, 1, s.BySeverity[types.SeverityHigh])
		gt.Equal(t, 1, s.BySeverity[types.SeverityMedium])
		gt.Equal(t, 1, s.BySeverity[types.SeverityLow])

		// Per-discipline, per-severity and per-sector counts each sum
		// to the open total
		discTotal := 0
		for _, n := range s.ByDiscipline {
			discTotal += n
		}
		gt.Equal(t, s.Open, discTotal)

		sevTotal := 0
		for _, n := range s.BySeverity {
			sevTotal += n
		}
		gt.Equal(t, s.Open, sevTotal)

		sectorTotal := 0
		for _, sc := range s.Sectors {
			sectorTotal += sc.Count
		}
		gt.Equal(t, s.Open, sectorTotal)
	})

	t.Run("Sectors ordered by count descending, stable ties", func(t *testing.T) {
		issues := buildIssues(t)
		s := model.Summarize(issues, site, today)

		gt.Equal(t, 3, len(s.Sectors))
		gt.Equal(t, types.SectorID("terreo"), s.Sectors[0].ID)
		gt.Equal(t, 2, s.Sectors[0].Count)
		gt.Equal(t, types.SectorID("subsolo"), s.Sectors[1].ID)
		gt.Equal(t, 1, s.Sectors[1].Count)
		gt.Equal(t, types.SectorID("cobertura"), s.Sectors[2].ID)
		gt.Equal(t, 0, s.Sectors[2].Count)
	})

	t.Run("Tied sectors keep configured order", func(t *testing.T) {
		s := model.Summarize(nil, site, today)
		gt.Equal(t, types.SectorID("terreo"), s.Sectors[0].ID)
		gt.Equal(t, types.SectorID("subsolo"), s.Sectors[1].ID)
		gt.Equal(t, types.SectorID("cobertura"), s.Sectors[2].ID)
	})

	t.Run("Unknown sector counts in totals but not in breakdown", func(t *testing.T) {
		issue, err := model.NewIssue("demolished-wing", "civil", types.SeverityLow,
			model.Position{X: 5, Y: 5, Page: 1}, "user-1")
		gt.NoError(t, err)

		s := model.Summarize([]*model.Issue{issue}, site, today)
		gt.Equal(t, 1, s.Total)
		gt.Equal(t, 1, s.Open)
		for _, sc := range s.Sectors {
			gt.Equal(t, 0, sc.Count)
		}
	})
}
