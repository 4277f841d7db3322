package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names. The issues collection keeps the Portuguese wire
	// schema of the original deployment so existing documents stay
	// readable.
	issuesCollection   = "incendios"
	usersCollection    = "users"
	sessionsCollection = "sessions"
)

// issueDoc is the Firestore document shape for an issue. Field names match
// the deployed schema, not the Go model.
type issueDoc struct {
	Sector      string      `firestore:"setor"`
	Discipline  string      `firestore:"disciplina"`
	Severity    int         `firestore:"severidade"`
	Bottleneck  bool        `firestore:"isGargalo"`
	Description string      `firestore:"descricao"`
	Responsible string      `firestore:"responsavel"`
	OccurredOn  *time.Time  `firestore:"dataAconteceu"`
	DueOn       *time.Time  `firestore:"dataPretendeApagar"`
	ResolvedOn  *time.Time  `firestore:"dataFoiApagada"`
	CreatedBy   string      `firestore:"criadoPor"`
	Position    positionDoc `firestore:"coordenadas"`
	CreatedAt   time.Time   `firestore:"createdAt"`
	UpdatedAt   time.Time   `firestore:"updatedAt"`
}

type positionDoc struct {
	X    float64 `firestore:"x"`
	Y    float64 `firestore:"y"`
	Page int     `firestore:"page"`
}

// encodeIssue converts the domain model to its document shape. Calendar
// dates are stored as timestamps at local midnight so they read back as
// the same calendar day regardless of the store's zone.
func encodeIssue(issue *model.Issue) issueDoc {
	return issueDoc{
		Sector:      issue.Sector.String(),
		Discipline:  issue.Discipline.String(),
		Severity:    issue.Severity.Int(),
		Bottleneck:  issue.Bottleneck,
		Description: issue.Description,
		Responsible: issue.Responsible,
		OccurredOn:  dateToTimestamp(issue.OccurredOn),
		DueOn:       dateToTimestamp(issue.DueOn),
		ResolvedOn:  dateToTimestamp(issue.ResolvedOn),
		CreatedBy:   issue.CreatedBy.String(),
		Position: positionDoc{
			X:    issue.Position.X,
			Y:    issue.Position.Y,
			Page: issue.Position.Page,
		},
		CreatedAt: issue.CreatedAt,
		UpdatedAt: issue.UpdatedAt,
	}
}

// decodeIssue converts a document back to the domain model
func decodeIssue(id string, doc issueDoc) *model.Issue {
	return &model.Issue{
		ID:          types.IssueID(id),
		Sector:      types.SectorID(doc.Sector),
		Discipline:  types.DisciplineID(doc.Discipline),
		Severity:    types.Severity(doc.Severity),
		Bottleneck:  doc.Bottleneck,
		Description: doc.Description,
		Responsible: doc.Responsible,
		OccurredOn:  timestampToDate(doc.OccurredOn),
		DueOn:       timestampToDate(doc.DueOn),
		ResolvedOn:  timestampToDate(doc.ResolvedOn),
		CreatedBy:   types.UserID(doc.CreatedBy),
		Position: model.Position{
			X:    doc.Position.X,
			Y:    doc.Position.Y,
			Page: doc.Position.Page,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func dateToTimestamp(d types.Date) *time.Time {
	t, ok := d.LocalMidnight()
	if !ok {
		return nil
	}
	return &t
}

func timestampToDate(t *time.Time) types.Date {
	if t == nil {
		return ""
	}
	return types.DateOf(*t)
}

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by attempting to read from the issues collection.
	// This fails fast on a bad project ID or missing permissions.
	_, err = client.Collection(issuesCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// Other errors (like NotFound for new projects) may just mean an
		// empty collection; log and continue
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// CreateIssue saves a new issue to Firestore
func (f *Firestore) CreateIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID == "" {
		return goerr.New("issue ID is empty")
	}

	_, err := f.client.Collection(issuesCollection).Doc(issue.ID.String()).Set(ctx, encodeIssue(issue))
	if err != nil {
		return goerr.Wrap(err, "failed to save issue to firestore")
	}

	return nil
}

// GetIssue retrieves an issue by ID
func (f *Firestore) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	if id == "" {
		return nil, goerr.New("issue ID is empty")
	}

	doc, err := f.client.Collection(issuesCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrIssueNotFound, "failed to get issue",
				goerr.V("issueID", id))
		}
		return nil, goerr.Wrap(err, "failed to get issue from firestore")
	}

	var d issueDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode issue")
	}

	return decodeIssue(doc.Ref.ID, d), nil
}

// ListIssues lists issues, newest first. When a sector is given the query
// filters server-side without OrderBy to avoid requiring a composite
// index; sorting happens in memory instead.
func (f *Firestore) ListIssues(ctx context.Context, sector types.SectorID) ([]*model.Issue, error) {
	var iter *firestore.DocumentIterator
	if sector != "" {
		iter = f.client.Collection(issuesCollection).
			Where("setor", "==", sector.String()).
			Documents(ctx)
	} else {
		iter = f.client.Collection(issuesCollection).
			OrderBy("createdAt", firestore.Desc).
			Documents(ctx)
	}
	defer iter.Stop()

	var issues []*model.Issue
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate issues")
		}

		var d issueDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode issue")
		}

		issues = append(issues, decodeIssue(doc.Ref.ID, d))
	}

	if sector != "" {
		sort.Slice(issues, func(i, j int) bool {
			return issues[i].CreatedAt.After(issues[j].CreatedAt)
		})
	}

	return issues, nil
}

// UpdateIssue overwrites an existing issue in Firestore
func (f *Firestore) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID == "" {
		return goerr.New("issue ID is empty")
	}

	docRef := f.client.Collection(issuesCollection).Doc(issue.ID.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrIssueNotFound, "failed to update issue",
				goerr.V("issueID", issue.ID))
		}
		return goerr.Wrap(err, "failed to check issue existence")
	}

	if _, err := docRef.Set(ctx, encodeIssue(issue)); err != nil {
		return goerr.Wrap(err, "failed to update issue in firestore")
	}

	return nil
}

// DeleteIssue removes an issue from Firestore (hard delete)
func (f *Firestore) DeleteIssue(ctx context.Context, id types.IssueID) error {
	if id == "" {
		return goerr.New("issue ID is empty")
	}

	docRef := f.client.Collection(issuesCollection).Doc(id.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrIssueNotFound, "failed to delete issue",
				goerr.V("issueID", id))
		}
		return goerr.Wrap(err, "failed to check issue existence")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete issue from firestore")
	}

	return nil
}

// SaveUser saves a user to Firestore
func (f *Firestore) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	_, err := f.client.Collection(usersCollection).Doc(user.ID.String()).Set(ctx, user)
	if err != nil {
		return goerr.Wrap(err, "failed to save user to firestore")
	}

	return nil
}

// GetUser retrieves a user by ID
func (f *Firestore) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	doc, err := f.client.Collection(usersCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user",
				goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user from firestore")
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user")
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email address
func (f *Firestore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, goerr.New("email is empty")
	}

	iter := f.client.Collection(usersCollection).
		Where("Email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user by email")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email")
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user")
	}

	return &user, nil
}

// SaveSession saves a session to Firestore
func (f *Firestore) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is empty")
	}

	_, err := f.client.Collection(sessionsCollection).Doc(session.ID.String()).Set(ctx, session)
	if err != nil {
		return goerr.Wrap(err, "failed to save session to firestore")
	}

	return nil
}

// GetSession retrieves a session by ID
func (f *Firestore) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.New("session ID is empty")
	}

	doc, err := f.client.Collection(sessionsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to get session")
		}
		return nil, goerr.Wrap(err, "failed to get session from firestore")
	}

	var session model.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session")
	}

	return &session, nil
}

// DeleteSession deletes a session from Firestore
func (f *Firestore) DeleteSession(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is empty")
	}

	doc := f.client.Collection(sessionsCollection).Doc(id.String())
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrSessionNotFound, "failed to delete session")
		}
		return goerr.Wrap(err, "failed to check session existence")
	}

	if _, err := doc.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete session from firestore")
	}

	return nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ interfaces.Repository = (*Firestore)(nil) // Compile-time interface check
