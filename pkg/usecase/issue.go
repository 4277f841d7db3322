package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
	"github.com/preferencial-eng/incendio/pkg/utils/async"
)

// AnnotatedIssue pairs an issue with its status derived at read time
type AnnotatedIssue struct {
	*model.Issue
	Evaluation model.Evaluation
}

// Issue implements IssueUseCase
type Issue struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier
	site     *model.SiteConfig
}

// NewIssue creates a new Issue use case
func NewIssue(repo interfaces.Repository, notifier interfaces.Notifier, site *model.SiteConfig) *Issue {
	return &Issue{
		repo:     repo,
		notifier: notifier,
		site:     site,
	}
}

// CreateIssueInput holds the fields accepted when registering an issue
type CreateIssueInput struct {
	Sector      types.SectorID
	Discipline  types.DisciplineID
	Severity    types.Severity
	Bottleneck  bool
	Description string
	Responsible string
	OccurredOn  types.Date
	DueOn       types.Date
	Position    model.Position
}

// Create registers a new issue. The creator is stamped from the
// authenticated identity in the context and never overwritten afterwards.
// The WhatsApp notification runs in the background: a delivery failure is
// logged and never blocks or reverses the creation.
func (u *Issue) Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error) {
	if !u.site.IsValidSectorID(input.Sector) {
		return nil, goerr.New("unknown sector", goerr.V("sector", input.Sector))
	}
	if !u.site.IsValidDisciplineID(input.Discipline) {
		return nil, goerr.New("unknown discipline", goerr.V("discipline", input.Discipline))
	}

	var createdBy types.UserID
	if authCtx, ok := model.GetAuthContext(ctx); ok {
		createdBy = authCtx.UserID
	}

	issue, err := model.NewIssue(input.Sector, input.Discipline, input.Severity, input.Position, createdBy)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create issue")
	}

	issue.Bottleneck = input.Bottleneck
	issue.Description = input.Description
	issue.Responsible = input.Responsible
	if input.OccurredOn.Valid() {
		issue.OccurredOn = input.OccurredOn
	}
	issue.DueOn = input.DueOn

	if err := u.repo.CreateIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to save issue")
	}

	ctxlog.From(ctx).Info("Issue created",
		"issueID", issue.ID,
		"sector", issue.Sector,
		"discipline", issue.Discipline,
		"severity", issue.Severity,
	)

	if u.notifier != nil {
		created := *issue
		async.Dispatch(ctx, func(ctx context.Context) error {
			return u.notifier.NotifyIssueCreated(ctx, &created, u.creatorName(ctx, created.CreatedBy))
		})
	}

	return issue, nil
}

// creatorName resolves the display name of the creating user, falling
// back to the raw ID when the user record is gone
func (u *Issue) creatorName(ctx context.Context, id types.UserID) string {
	if id == "" {
		return ""
	}
	user, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return id.String()
	}
	return user.Name
}

// List returns issues matching the filter, newest first. The sector
// criterion is pushed down to the fetch; the remaining predicates are
// applied in memory against the status derived at the current date.
func (u *Issue) List(ctx context.Context, filter model.Filter) ([]*AnnotatedIssue, error) {
	issues, err := u.repo.ListIssues(ctx, filter.Sector)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list issues")
	}

	today := types.DateOf(time.Now())
	matched := filter.Apply(issues, today)

	annotated := make([]*AnnotatedIssue, 0, len(matched))
	for _, issue := range matched {
		annotated = append(annotated, &AnnotatedIssue{
			Issue:      issue,
			Evaluation: model.Evaluate(issue, today),
		})
	}

	return annotated, nil
}

// Get retrieves a single issue with its derived status
func (u *Issue) Get(ctx context.Context, id types.IssueID) (*AnnotatedIssue, error) {
	issue, err := u.repo.GetIssue(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue")
	}

	return &AnnotatedIssue{
		Issue:      issue,
		Evaluation: model.Evaluate(issue, types.DateOf(time.Now())),
	}, nil
}

// UpdateIssueInput holds a partial mutation; nil fields are left untouched.
// ID, CreatedAt and CreatedBy can never be changed.
type UpdateIssueInput struct {
	Sector      *types.SectorID
	Discipline  *types.DisciplineID
	Severity    *types.Severity
	Bottleneck  *bool
	Description *string
	Responsible *string
	OccurredOn  *types.Date
	DueOn       *types.Date
	ResolvedOn  *types.Date
	Position    *model.Position
}

// Update applies a partial mutation to an issue
func (u *Issue) Update(ctx context.Context, id types.IssueID, input UpdateIssueInput) (*model.Issue, error) {
	issue, err := u.repo.GetIssue(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue")
	}

	if input.Sector != nil {
		if !u.site.IsValidSectorID(*input.Sector) {
			return nil, goerr.New("unknown sector", goerr.V("sector", *input.Sector))
		}
		issue.Sector = *input.Sector
	}
	if input.Discipline != nil {
		if !u.site.IsValidDisciplineID(*input.Discipline) {
			return nil, goerr.New("unknown discipline", goerr.V("discipline", *input.Discipline))
		}
		issue.Discipline = *input.Discipline
	}
	if input.Severity != nil {
		if !input.Severity.IsValid() {
			return nil, goerr.New("severity must be 1, 2 or 3", goerr.V("severity", *input.Severity))
		}
		issue.Severity = *input.Severity
	}
	if input.Bottleneck != nil {
		issue.Bottleneck = *input.Bottleneck
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Responsible != nil {
		issue.Responsible = *input.Responsible
	}
	if input.OccurredOn != nil {
		issue.OccurredOn = *input.OccurredOn
	}
	if input.DueOn != nil {
		issue.DueOn = *input.DueOn
	}
	if input.ResolvedOn != nil {
		issue.ResolvedOn = *input.ResolvedOn
	}
	if input.Position != nil {
		if err := input.Position.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid mark position")
		}
		issue.Position = *input.Position
	}

	issue.Touch()
	if err := u.repo.UpdateIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to update issue")
	}

	ctxlog.From(ctx).Info("Issue updated", "issueID", issue.ID)

	return issue, nil
}

// Resolve closes an issue by recording its resolution date, defaulting to
// today when none is given
func (u *Issue) Resolve(ctx context.Context, id types.IssueID, on types.Date) (*model.Issue, error) {
	issue, err := u.repo.GetIssue(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get issue")
	}

	if !on.Valid() {
		on = types.DateOf(time.Now())
	}

	issue.ResolvedOn = on
	issue.Touch()
	if err := u.repo.UpdateIssue(ctx, issue); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve issue")
	}

	ctxlog.From(ctx).Info("Issue resolved",
		"issueID", issue.ID,
		"resolvedOn", on,
	)

	return issue, nil
}

// Delete removes an issue permanently. Only the admin may delete.
func (u *Issue) Delete(ctx context.Context, id types.IssueID) error {
	authCtx, ok := model.GetAuthContext(ctx)
	if !ok || !authCtx.IsAdmin {
		return goerr.New("admin privileges required")
	}

	if err := u.repo.DeleteIssue(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete issue")
	}

	ctxlog.From(ctx).Info("Issue deleted",
		"issueID", id,
		"deletedBy", authCtx.UserID,
	)

	return nil
}

// ResolveMark decides whether a click on a sector's floor plan selects an
// existing mark or places a new one
func (u *Issue) ResolveMark(ctx context.Context, sector types.SectorID, click model.Position) (*model.MarkPlacement, error) {
	if !u.site.IsValidSectorID(sector) {
		return nil, goerr.New("unknown sector", goerr.V("sector", sector))
	}
	if err := click.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid click position")
	}

	issues, err := u.repo.ListIssues(ctx, sector)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list issues")
	}

	placement := model.ResolveMark(click, issues)
	return &placement, nil
}

var _ IssueUseCase = (*Issue)(nil) // Compile-time interface check
