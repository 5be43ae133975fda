package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing tasks. The
// role-dependent scope (ClientID or OpenUnassigned) is set by the service
// layer; ProjectID and Status come straight from the request.
type ListTasksFilter struct {
	// ClientID scopes to tasks whose project belongs to this client.
	ClientID string
	// OpenUnassigned scopes to open tasks without an assignee (worker view).
	OpenUnassigned bool
	// AssigneeID scopes to tasks assigned to this worker.
	AssigneeID string
	ProjectID  string
	Status     string
	Skip       int
	// Limit caps the page size. Zero means no cap.
	Limit int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	// Update persists all mutable fields of task.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	// Claim atomically assigns the task to workerID while it is still open
	// and unassigned. It returns ErrTaskNotAvailable when the task exists but
	// the precondition no longer holds, ErrTaskNotFound when it never did.
	Claim(ctx context.Context, taskID, workerID string) (*domain.Task, error)
}
