package handler

import "time"

// --- Request types ---

// createTaskRequest mirrors the task fields a client may set at creation.
// Optional fields use pointers so absent values can fall back to defaults
// (weight 1, pricing_type "fixed", application_window_minutes 60).
type createTaskRequest struct {
	ProjectID                string     `json:"project_id"  validate:"required"`
	Title                    string     `json:"title"       validate:"required"`
	Description              string     `json:"description" validate:"required"`
	Weight                   *int       `json:"weight"      validate:"omitempty,gt=0"`
	Payout                   float64    `json:"payout"      validate:"required,gt=0"`
	Deadline                 *time.Time `json:"deadline"`
	PricingType              *string    `json:"pricing_type"`
	HourlyRate               *float64   `json:"hourly_rate"`
	EstimatedHours           *int       `json:"estimated_hours"`
	RequiredSkills           []string   `json:"required_skills"`
	AutoAssign               *bool      `json:"auto_assign"`
	ApplicationWindowMinutes *int       `json:"application_window_minutes" validate:"omitempty,gt=0"`
}

// updateTaskRequest is a partial patch: nil fields are left untouched.
// Status and assignee_id are stored as given; only the claim endpoint guards
// the open → assigned transition.
type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Weight         *int       `json:"weight"`
	Payout         *float64   `json:"payout"`
	Deadline       *time.Time `json:"deadline"`
	Status         *string    `json:"status"`
	AssigneeID     *string    `json:"assignee_id"`
	PricingType    *string    `json:"pricing_type"`
	HourlyRate     *float64   `json:"hourly_rate"`
	EstimatedHours *int       `json:"estimated_hours"`
	RequiredSkills *[]string  `json:"required_skills"`
	AutoAssign     *bool      `json:"auto_assign"`
}

// --- Response types ---

type taskResponse struct {
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
	Status                   string     `json:"status"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}
