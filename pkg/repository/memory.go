package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	issues   map[types.IssueID]*model.Issue
	users    map[types.UserID]*model.User
	sessions map[types.SessionID]*model.Session
}

// NewMemory creates a new memory repository
func NewMemory() *Memory {
	return &Memory{
		issues:   make(map[types.IssueID]*model.Issue),
		users:    make(map[types.UserID]*model.User),
		sessions: make(map[types.SessionID]*model.Session),
	}
}

// CreateIssue saves a new issue to memory
func (m *Memory) CreateIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID == "" {
		return goerr.New("issue ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Deep copy to prevent external modifications
	issueCopy := *issue
	m.issues[issue.ID] = &issueCopy

	return nil
}

// GetIssue retrieves an issue by ID
func (m *Memory) GetIssue(ctx context.Context, id types.IssueID) (*model.Issue, error) {
	if id == "" {
		return nil, goerr.New("issue ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	issue, exists := m.issues[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrIssueNotFound, "failed to get issue",
			goerr.V("issueID", id))
	}

	// Return a copy to prevent external modifications
	issueCopy := *issue
	return &issueCopy, nil
}

// ListIssues lists issues, newest first. An empty sector means all sectors.
func (m *Memory) ListIssues(ctx context.Context, sector types.SectorID) ([]*model.Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issues := make([]*model.Issue, 0, len(m.issues))
	for _, issue := range m.issues {
		if sector != "" && issue.Sector != sector {
			continue
		}
		issueCopy := *issue
		issues = append(issues, &issueCopy)
	}

	// Sort by creation time (newest first)
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})

	return issues, nil
}

// UpdateIssue updates an existing issue
func (m *Memory) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	if issue == nil {
		return goerr.New("issue is nil")
	}
	if issue.ID == "" {
		return goerr.New("issue ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.issues[issue.ID]; !exists {
		return goerr.Wrap(model.ErrIssueNotFound, "failed to update issue",
			goerr.V("issueID", issue.ID))
	}

	issueCopy := *issue
	m.issues[issue.ID] = &issueCopy

	return nil
}

// DeleteIssue removes an issue from memory
func (m *Memory) DeleteIssue(ctx context.Context, id types.IssueID) error {
	if id == "" {
		return goerr.New("issue ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.issues[id]; !exists {
		return goerr.Wrap(model.ErrIssueNotFound, "failed to delete issue",
			goerr.V("issueID", id))
	}

	delete(m.issues, id)
	return nil
}

// SaveUser saves a user to memory
func (m *Memory) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	userCopy := *user
	m.users[user.ID] = &userCopy

	return nil
}

// GetUser retrieves a user by ID
func (m *Memory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user",
			goerr.V("userID", id))
	}

	userCopy := *user
	return &userCopy, nil
}

// GetUserByEmail retrieves a user by email address
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, goerr.New("email is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			userCopy := *user
			return &userCopy, nil
		}
	}

	return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user by email")
}

// SaveSession saves a session to memory
func (m *Memory) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessionCopy := *session
	m.sessions[session.ID] = &sessionCopy

	return nil
}

// GetSession retrieves a session by ID
func (m *Memory) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.New("session ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to get session")
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// DeleteSession deletes a session from memory
func (m *Memory) DeleteSession(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return goerr.Wrap(model.ErrSessionNotFound, "failed to delete session")
	}

	delete(m.sessions, id)
	return nil
}

// Close does nothing for memory repository
func (m *Memory) Close() error {
	return nil
}

// Clear clears all data (useful for testing)
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = make(map[types.IssueID]*model.Issue)
	m.users = make(map[types.UserID]*model.User)
	m.sessions = make(map[types.SessionID]*model.Session)
}

var _ interfaces.Repository = (*Memory)(nil) // Compile-time interface check
