package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
//
// The only transition this service guards is open → assigned (claim). Every
// other status change flows through the generic field-update path and is not
// validated against a transition graph.
type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskAssigned  TaskStatus = "assigned"
	TaskSubmitted TaskStatus = "submitted"
	TaskApproved  TaskStatus = "approved"
	TaskRejected  TaskStatus = "rejected"
)

// Pricing models for a task. Stored and returned, never interpreted.
const (
	PricingFixed  = "fixed"
	PricingHourly = "hourly"
)

// Task belongs to exactly one project and is optionally assigned to one
// worker. AssigneeID is nil until the task is claimed.
type Task struct {
	ID                       string     `json:"id"`
	ProjectID                string     `json:"project_id"`
	AssigneeID               *string    `json:"assignee_id"`
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	Weight                   int        `json:"weight"`
	Payout                   float64    `json:"payout"`
	Deadline                 *time.Time `json:"deadline"`
	PricingType              string     `json:"pricing_type"`
	HourlyRate               *float64   `json:"hourly_rate"`
	EstimatedHours           *int       `json:"estimated_hours"`
	RequiredSkills           []string   `json:"required_skills"`
	AutoAssign               bool       `json:"auto_assign"`
	ApplicationWindowMinutes int        `json:"application_window_minutes"`
	Status                   TaskStatus `json:"status"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// Claimable reports whether the task still satisfies the claim precondition.
// The authoritative check is the conditional UPDATE in the repository.
func (t *Task) Claimable() bool {
	return t.Status == TaskOpen && t.AssigneeID == nil
}

// AssignedTo reports whether the task is assigned to the given worker.
func (t *Task) AssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
