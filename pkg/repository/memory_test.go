package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
	"github.com/preferencial-eng/incendio/pkg/repository"
)

func newIssue(t *testing.T, sector types.SectorID) *model.Issue {
	t.Helper()
	issue, err := model.NewIssue(sector, "civil", types.SeverityLow,
		model.Position{X: 10, Y: 10, Page: 1}, "user-1")
	gt.NoError(t, err)
	return issue
}

func TestMemoryIssueCRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	t.Run("Create and get", func(t *testing.T) {
		issue := newIssue(t, "terreo")
		gt.NoError(t, repo.CreateIssue(ctx, issue))

		got, err := repo.GetIssue(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, issue.ID, got.ID)
		gt.Equal(t, issue.Sector, got.Sector)
	})

	t.Run("Get unknown issue", func(t *testing.T) {
		_, err := repo.GetIssue(ctx, "missing")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrIssueNotFound))
	})

	t.Run("Stored copy is isolated from the caller", func(t *testing.T) {
		issue := newIssue(t, "terreo")
		gt.NoError(t, repo.CreateIssue(ctx, issue))

		issue.Description = "mutated after save"
		got, err := repo.GetIssue(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, "", got.Description)
	})

	t.Run("Update", func(t *testing.T) {
		issue := newIssue(t, "terreo")
		gt.NoError(t, repo.CreateIssue(ctx, issue))

		issue.Description = "leaking pipe"
		issue.ResolvedOn = "2024-01-16"
		gt.NoError(t, repo.UpdateIssue(ctx, issue))

		got, err := repo.GetIssue(ctx, issue.ID)
		gt.NoError(t, err)
		gt.Equal(t, "leaking pipe", got.Description)
		gt.True(t, got.IsResolved())
	})

	t.Run("Update unknown issue", func(t *testing.T) {
		issue := newIssue(t, "terreo")
		err := repo.UpdateIssue(ctx, issue)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrIssueNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		issue := newIssue(t, "terreo")
		gt.NoError(t, repo.CreateIssue(ctx, issue))
		gt.NoError(t, repo.DeleteIssue(ctx, issue.ID))

		_, err := repo.GetIssue(ctx, issue.ID)
		gt.True(t, errors.Is(err, model.ErrIssueNotFound))

		err = repo.DeleteIssue(ctx, issue.ID)
		gt.True(t, errors.Is(err, model.ErrIssueNotFound))
	})
}

func TestMemoryListIssues(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	first := newIssue(t, "terreo")
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	second := newIssue(t, "subsolo")
	second.CreatedAt = time.Now().Add(-1 * time.Hour)
	third := newIssue(t, "terreo")
	third.CreatedAt = time.Now()

	for _, issue := range []*model.Issue{first, second, third} {
		gt.NoError(t, repo.CreateIssue(ctx, issue))
	}

	t.Run("All sectors, newest first", func(t *testing.T) {
		issues, err := repo.ListIssues(ctx, "")
		gt.NoError(t, err)
		gt.Equal(t, 3, len(issues))
		gt.Equal(t, third.ID, issues[0].ID)
		gt.Equal(t, second.ID, issues[1].ID)
		gt.Equal(t, first.ID, issues[2].ID)
	})

	t.Run("Sector filter", func(t *testing.T) {
		issues, err := repo.ListIssues(ctx, "terreo")
		gt.NoError(t, err)
		gt.Equal(t, 2, len(issues))
		gt.Equal(t, third.ID, issues[0].ID)
		gt.Equal(t, first.ID, issues[1].ID)
	})

	t.Run("Unknown sector yields empty", func(t *testing.T) {
		issues, err := repo.ListIssues(ctx, "penthouse")
		gt.NoError(t, err)
		gt.Equal(t, 0, len(issues))
	})
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	user := model.NewUser("Maria", "maria@example.com", "hash")
	gt.NoError(t, repo.SaveUser(ctx, user))

	t.Run("Get by ID", func(t *testing.T) {
		got, err := repo.GetUser(ctx, user.ID)
		gt.NoError(t, err)
		gt.Equal(t, "Maria", got.Name)
	})

	t.Run("Get by email", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "maria@example.com")
		gt.NoError(t, err)
		gt.Equal(t, user.ID, got.ID)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := repo.GetUserByEmail(ctx, "nobody@example.com")
		gt.True(t, errors.Is(err, model.ErrUserNotFound))
	})
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	session, err := model.NewSession("user-1", time.Hour)
	gt.NoError(t, err)
	gt.NoError(t, repo.SaveSession(ctx, session))

	t.Run("Get", func(t *testing.T) {
		got, err := repo.GetSession(ctx, session.ID)
		gt.NoError(t, err)
		gt.Equal(t, session.Secret, got.Secret)
		gt.Equal(t, types.UserID("user-1"), got.UserID)
	})

	t.Run("Delete", func(t *testing.T) {
		gt.NoError(t, repo.DeleteSession(ctx, session.ID))
		_, err := repo.GetSession(ctx, session.ID)
		gt.True(t, errors.Is(err, model.ErrSessionNotFound))
	})
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.CreateIssue(ctx, newIssue(t, "terreo")))
	repo.Clear()

	issues, err := repo.ListIssues(ctx, "")
	gt.NoError(t, err)
	gt.Equal(t, 0, len(issues))
}
