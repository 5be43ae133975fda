package ports

import (
	"context"
	"time"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. The transport layer fills
// in defaults before the input reaches the service.
type CreateTaskInput struct {
	ProjectID                string
	Title                    string
	Description              string
	Weight                   int
	Payout                   float64
	Deadline                 *time.Time
	PricingType              string
	HourlyRate               *float64
	EstimatedHours           *int
	RequiredSkills           []string
	ApplicationWindowMinutes int
	AutoAssign               bool
}

// TaskPatch carries optional task changes. Nil fields are left untouched.
type TaskPatch struct {
	Title          *string
	Description    *string
	Weight         *int
	Payout         *float64
	Deadline       *time.Time
	Status         *string
	AssigneeID     *string
	PricingType    *string
	HourlyRate     *float64
	EstimatedHours *int
	RequiredSkills *[]string
	AutoAssign     *bool
}

// ListTasksInput carries the caller-controlled filters for listing tasks.
type ListTasksInput struct {
	ProjectID string
	Status    string
	Skip      int
	Limit     int
}

// TaskService defines task use cases, including the claim workflow.
type TaskService interface {
	// Create adds a task to a project owned by the acting client.
	Create(ctx context.Context, actor *domain.User, input CreateTaskInput) (*domain.Task, error)
	// List returns tasks visible to the actor: clients see tasks from their
	// own projects, workers see the open unassigned pool.
	List(ctx context.Context, actor *domain.User, input ListTasksInput) ([]*domain.Task, error)
	// ListAssigned returns every task currently assigned to the acting worker.
	ListAssigned(ctx context.Context, actor *domain.User) ([]*domain.Task, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Task, error)
	Update(ctx context.Context, actor *domain.User, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	// Claim assigns an open task to the acting worker and notifies the
	// project owner asynchronously.
	Claim(ctx context.Context, actor *domain.User, id string) (*domain.Task, error)
}
