package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// ListProjectsFilter carries the query parameters for listing projects.
// The service layer sets at most one of ClientID and Status: clients are
// scoped to their own projects, workers to open ones.
type ListProjectsFilter struct {
	ClientID string
	Status   string
	Skip     int
	Limit    int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, error)
	// Update persists all mutable fields of project.
	Update(ctx context.Context, project *domain.Project) error
	// Delete removes the project and all of its tasks in a single transaction.
	Delete(ctx context.Context, id string) error
}
