package http

import (
	"net/http"

	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/usecase"
	"github.com/preferencial-eng/incendio/pkg/utils/apperr"
)

// DashboardHandler handles dashboard and site layout endpoints
type DashboardHandler struct {
	dashboardUC usecase.DashboardUseCase
	site        *model.SiteConfig
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardUC usecase.DashboardUseCase, site *model.SiteConfig) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		site:        site,
	}
}

type sectorView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	PDFPath string `json:"pdfPath,omitempty"`
}

type disciplineView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// HandleSectors handles GET /api/sectors
func (h *DashboardHandler) HandleSectors(w http.ResponseWriter, r *http.Request) {
	views := make([]sectorView, 0, len(h.site.Sectors))
	for _, sector := range h.site.Sectors {
		views = append(views, sectorView{
			ID:      sector.ID,
			Name:    sector.Name,
			PDFPath: sector.PDFPath,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sectors": views})
}

// HandleDisciplines handles GET /api/disciplines
func (h *DashboardHandler) HandleDisciplines(w http.ResponseWriter, r *http.Request) {
	views := make([]disciplineView, 0, len(h.site.Disciplines))
	for _, discipline := range h.site.Disciplines {
		views = append(views, disciplineView{
			ID:    discipline.ID,
			Name:  discipline.Name,
			Color: discipline.Color,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"disciplines": views})
}

type sectorCountView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type summaryView struct {
	Total        int               `json:"total"`
	Open         int               `json:"open"`
	Closed       int               `json:"closed"`
	Bottlenecks  int               `json:"bottlenecks"`
	Overdue      int               `json:"overdue"`
	ByDiscipline map[string]int    `json:"byDiscipline"`
	BySeverity   map[string]int    `json:"bySeverity"`
	Sectors      []sectorCountView `json:"sectors"`
}

// HandleSummary handles GET /api/dashboard
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardUC.GetSummary(r.Context())
	if err != nil {
		apperr.Handle(r.Context(), err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	view := summaryView{
		Total:        summary.Total,
		Open:         summary.Open,
		Closed:       summary.Closed,
		Bottlenecks:  summary.Bottlenecks,
		Overdue:      summary.Overdue,
		ByDiscipline: make(map[string]int, len(summary.ByDiscipline)),
		BySeverity:   make(map[string]int, len(summary.BySeverity)),
		Sectors:      make([]sectorCountView, 0, len(summary.Sectors)),
	}

	for id, count := range summary.ByDiscipline {
		view.ByDiscipline[id.String()] = count
	}
	for sev, count := range summary.BySeverity {
		view.BySeverity[sev.String()] = count
	}
	for _, sc := range summary.Sectors {
		view.Sectors = append(view.Sectors, sectorCountView{
			ID:    sc.ID.String(),
			Name:  sc.Name,
			Count: sc.Count,
		})
	}

	writeJSON(w, http.StatusOK, view)
}
