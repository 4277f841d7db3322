package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
	"github.com/preferencial-eng/incendio/pkg/usecase"
	"github.com/preferencial-eng/incendio/pkg/utils/apperr"
)

// IssueHandler handles issue endpoints
type IssueHandler struct {
	issueUC usecase.IssueUseCase
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueUC usecase.IssueUseCase) *IssueHandler {
	return &IssueHandler{
		issueUC: issueUC,
	}
}

// issueView is the JSON representation of an issue with its derived status
type issueView struct {
	ID                   string    `json:"id"`
	Sector               string    `json:"sector"`
	Discipline           string    `json:"discipline"`
	Severity             int       `json:"severity"`
	IsBottleneck         bool      `json:"isBottleneck"`
	Description          string    `json:"description,omitempty"`
	Responsible          string    `json:"responsible,omitempty"`
	OccurredOn           string    `json:"occurredOn,omitempty"`
	TargetResolutionDate string    `json:"targetResolutionDate,omitempty"`
	ResolvedOn           string    `json:"resolvedOn,omitempty"`
	Status               string    `json:"status"`
	DaysLate             *int      `json:"daysLate,omitempty"`
	XPercent             float64   `json:"xPercent"`
	YPercent             float64   `json:"yPercent"`
	PageIndex            int       `json:"pageIndex"`
	CreatedBy            string    `json:"createdBy,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func newIssueView(issue *model.Issue, ev model.Evaluation) issueView {
	return issueView{
		ID:                   issue.ID.String(),
		Sector:               issue.Sector.String(),
		Discipline:           issue.Discipline.String(),
		Severity:             issue.Severity.Int(),
		IsBottleneck:         issue.Bottleneck,
		Description:          issue.Description,
		Responsible:          issue.Responsible,
		OccurredOn:           string(issue.OccurredOn),
		TargetResolutionDate: string(issue.DueOn),
		ResolvedOn:           string(issue.ResolvedOn),
		Status:               string(ev.Status),
		DaysLate:             ev.DaysLate,
		XPercent:             issue.Position.X,
		YPercent:             issue.Position.Y,
		PageIndex:            issue.Position.Page,
		CreatedBy:            issue.CreatedBy.String(),
		CreatedAt:            issue.CreatedAt,
		UpdatedAt:            issue.UpdatedAt,
	}
}

type createIssueRequest struct {
	Sector               string  `json:"sector"`
	Discipline           string  `json:"discipline"`
	Severity             int     `json:"severity"`
	IsBottleneck         bool    `json:"isBottleneck"`
	Description          string  `json:"description"`
	Responsible          string  `json:"responsible"`
	OccurredOn           string  `json:"occurredOn"`
	TargetResolutionDate string  `json:"targetResolutionDate"`
	XPercent             float64 `json:"xPercent"`
	YPercent             float64 `json:"yPercent"`
	PageIndex            int     `json:"pageIndex"`
}

type updateIssueRequest struct {
	Sector               *string  `json:"sector"`
	Discipline           *string  `json:"discipline"`
	Severity             *int     `json:"severity"`
	IsBottleneck         *bool    `json:"isBottleneck"`
	Description          *string  `json:"description"`
	Responsible          *string  `json:"responsible"`
	OccurredOn           *string  `json:"occurredOn"`
	TargetResolutionDate *string  `json:"targetResolutionDate"`
	ResolvedOn           *string  `json:"resolvedOn"`
	XPercent             *float64 `json:"xPercent"`
	YPercent             *float64 `json:"yPercent"`
	PageIndex            *int     `json:"pageIndex"`
}

// HandleList handles GET /api/issues
func (h *IssueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	issues, err := h.issueUC.List(r.Context(), filter)
	if err != nil {
		apperr.Handle(r.Context(), err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	views := make([]issueView, 0, len(issues))
	for _, annotated := range issues {
		views = append(views, newIssueView(annotated.Issue, annotated.Evaluation))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues": views,
		"count":  len(views),
	})
}

// HandleGet handles GET /api/issues/{issueID}
func (h *IssueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := types.IssueID(chi.URLParam(r, "issueID"))

	annotated, err := h.issueUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, newIssueView(annotated.Issue, annotated.Evaluation))
}

// HandleCreate handles POST /api/issues
func (h *IssueHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	occurredOn, err := types.ParseDate(req.OccurredOn)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	dueOn, err := types.ParseDate(req.TargetResolutionDate)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	input := usecase.CreateIssueInput{
		Sector:      types.SectorID(req.Sector),
		Discipline:  types.DisciplineID(req.Discipline),
		Severity:    types.Severity(req.Severity),
		Bottleneck:  req.IsBottleneck,
		Description: req.Description,
		Responsible: req.Responsible,
		OccurredOn:  occurredOn,
		DueOn:       dueOn,
		Position: model.Position{
			X:    req.XPercent,
			Y:    req.YPercent,
			Page: req.PageIndex,
		},
	}

	issue, err := h.issueUC.Create(r.Context(), input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	today := types.DateOf(time.Now())
	writeJSON(w, http.StatusCreated, newIssueView(issue, model.Evaluate(issue, today)))
}

// HandleUpdate handles PATCH /api/issues/{issueID}
func (h *IssueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := types.IssueID(chi.URLParam(r, "issueID"))

	var req updateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	input, err := buildUpdateInput(req)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	issue, err := h.issueUC.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, err, statusFor(err))
		return
	}

	today := types.DateOf(time.Now())
	writeJSON(w, http.StatusOK, newIssueView(issue, model.Evaluate(issue, today)))
}

// HandleDelete handles DELETE /api/issues/{issueID}
func (h *IssueHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := types.IssueID(chi.URLParam(r, "issueID"))

	authCtx, ok := model.GetAuthContext(r.Context())
	if !ok || !authCtx.IsAdmin {
		writeError(w, goerr.New("admin privileges required"), http.StatusForbidden)
		return
	}

	if err := h.issueUC.Delete(r.Context(), id); err != nil {
		writeError(w, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "issue deleted",
	})
}

type resolveIssueRequest struct {
	ResolvedOn string `json:"resolvedOn"`
}

// HandleResolve handles POST /api/issues/{issueID}/resolve
func (h *IssueHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	id := types.IssueID(chi.URLParam(r, "issueID"))

	var req resolveIssueRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
	}

	resolvedOn, err := types.ParseDate(req.ResolvedOn)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	issue, err := h.issueUC.Resolve(r.Context(), id, resolvedOn)
	if err != nil {
		writeError(w, err, statusFor(err))
		return
	}

	today := types.DateOf(time.Now())
	writeJSON(w, http.StatusOK, newIssueView(issue, model.Evaluate(issue, today)))
}

type resolveMarkRequest struct {
	Sector    string  `json:"sector"`
	XPercent  float64 `json:"xPercent"`
	YPercent  float64 `json:"yPercent"`
	PageIndex int     `json:"pageIndex"`
}

// HandleResolveMark handles POST /api/marks/resolve
func (h *IssueHandler) HandleResolveMark(w http.ResponseWriter, r *http.Request) {
	var req resolveMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	click := model.Position{
		X:    req.XPercent,
		Y:    req.YPercent,
		Page: req.PageIndex,
	}

	placement, err := h.issueUC.ResolveMark(r.Context(), types.SectorID(req.Sector), click)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	resp := map[string]any{
		"position": map[string]any{
			"xPercent":  placement.Position.X,
			"yPercent":  placement.Position.Y,
			"pageIndex": placement.Position.Page,
		},
	}

	if placement.Selected != nil {
		resp["action"] = "select"
		today := types.DateOf(time.Now())
		resp["issue"] = newIssueView(placement.Selected, model.Evaluate(placement.Selected, today))
	} else {
		resp["action"] = "create"
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseFilter builds the issue filter from query parameters
func parseFilter(r *http.Request) (model.Filter, error) {
	q := r.URL.Query()

	filter := model.Filter{
		Sector:     types.SectorID(q.Get("sector")),
		Discipline: types.DisciplineID(q.Get("discipline")),
	}

	if raw := q.Get("severity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.Filter{}, goerr.Wrap(err, "invalid severity", goerr.V("severity", raw))
		}
		sev := types.Severity(n)
		if !sev.IsValid() {
			return model.Filter{}, goerr.New("severity must be 1, 2 or 3", goerr.V("severity", n))
		}
		filter.Severity = sev
	}

	if raw := q.Get("bottleneck"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return model.Filter{}, goerr.Wrap(err, "invalid bottleneck flag", goerr.V("bottleneck", raw))
		}
		filter.Bottleneck = &b
	}

	if raw := q.Get("status"); raw != "" {
		status := types.IssueStatus(raw)
		if !status.IsValid() {
			return model.Filter{}, goerr.New("invalid status", goerr.V("status", raw))
		}
		filter.Status = status
	}

	return filter, nil
}

// buildUpdateInput converts the wire-level partial update into use case input
func buildUpdateInput(req updateIssueRequest) (usecase.UpdateIssueInput, error) {
	var input usecase.UpdateIssueInput

	if req.Sector != nil {
		sector := types.SectorID(*req.Sector)
		input.Sector = &sector
	}
	if req.Discipline != nil {
		discipline := types.DisciplineID(*req.Discipline)
		input.Discipline = &discipline
	}
	if req.Severity != nil {
		sev := types.Severity(*req.Severity)
		input.Severity = &sev
	}
	input.Bottleneck = req.IsBottleneck
	input.Description = req.Description
	input.Responsible = req.Responsible

	if req.OccurredOn != nil {
		d, err := types.ParseDate(*req.OccurredOn)
		if err != nil {
			return input, err
		}
		input.OccurredOn = &d
	}
	if req.TargetResolutionDate != nil {
		d, err := types.ParseDate(*req.TargetResolutionDate)
		if err != nil {
			return input, err
		}
		input.DueOn = &d
	}
	if req.ResolvedOn != nil {
		d, err := types.ParseDate(*req.ResolvedOn)
		if err != nil {
			return input, err
		}
		input.ResolvedOn = &d
	}

	if req.XPercent != nil || req.YPercent != nil || req.PageIndex != nil {
		if req.XPercent == nil || req.YPercent == nil || req.PageIndex == nil {
			return input, goerr.New("xPercent, yPercent and pageIndex must be updated together")
		}
		input.Position = &model.Position{
			X:    *req.XPercent,
			Y:    *req.YPercent,
			Page: *req.PageIndex,
		}
	}

	return input, nil
}

// statusFor maps repository sentinels to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrIssueNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
