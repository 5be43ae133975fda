package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// CreateProjectInput carries the data for a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	Budget      float64
	Tags        []string
}

// ProjectPatch carries optional project changes. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Tags        *[]string
	Budget      *float64
	Status      *string
}

// ProjectDetail is a project together with the tasks it owns.
type ProjectDetail struct {
	Project *domain.Project
	Tasks   []*domain.Task
}

// ProjectService defines project use cases. Every method receives the
// authenticated actor so ownership rules can be enforced.
type ProjectService interface {
	// Create opens a new project owned by the acting client.
	Create(ctx context.Context, actor *domain.User, input CreateProjectInput) (*domain.Project, error)
	// List returns the actor's own projects for clients, open projects for
	// everyone else.
	List(ctx context.Context, actor *domain.User, skip, limit int) ([]*domain.Project, error)
	Get(ctx context.Context, actor *domain.User, id string) (*ProjectDetail, error)
	Update(ctx context.Context, actor *domain.User, id string, patch ProjectPatch) (*domain.Project, error)
	// Delete removes the project and every task under it.
	Delete(ctx context.Context, actor *domain.User, id string) error
}
