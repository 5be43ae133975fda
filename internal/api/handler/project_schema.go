package handler

import "time"

// --- Request types ---

type createProjectRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	Budget      float64  `json:"budget"      validate:"required,gt=0"`
}

// updateProjectRequest is a partial patch: nil fields are left untouched.
// Status is stored as given; lifecycle transitions are not validated here.
type updateProjectRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Budget      *float64  `json:"budget" validate:"omitempty,gt=0"`
	Status      *string   `json:"status"`
}

// --- Response types ---

type projectResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Budget      float64   `json:"budget"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// projectDetailResponse is the by-id shape: the project plus its tasks.
type projectDetailResponse struct {
	projectResponse
	Tasks []taskResponse `json:"tasks"`
}
