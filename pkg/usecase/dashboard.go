package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/preferencial-eng/incendio/pkg/domain/interfaces"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/domain/types"
)

// Dashboard implements DashboardUseCase
type Dashboard struct {
	repo interfaces.Repository
	site *model.SiteConfig
}

// NewDashboard creates a new Dashboard use case
func NewDashboard(repo interfaces.Repository, site *model.SiteConfig) *Dashboard {
	return &Dashboard{
		repo: repo,
		site: site,
	}
}

// GetSummary aggregates every issue against the current date
func (u *Dashboard) GetSummary(ctx context.Context) (*model.Summary, error) {
	issues, err := u.repo.ListIssues(ctx, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list issues")
	}

	summary := model.Summarize(issues, u.site, types.DateOf(time.Now()))
	return summary, nil
}

var _ DashboardUseCase = (*Dashboard)(nil) // Compile-time interface check
