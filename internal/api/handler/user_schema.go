package handler

import "time"

// --- Request types ---

type registerRequest struct {
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Name     string   `json:"name"`
	Role     string   `json:"role"     validate:"required"`
	Skills   []string `json:"skills"`
	Tier     string   `json:"tier"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest is a partial patch: nil fields are left untouched.
type updateUserRequest struct {
	Name                *string   `json:"name"`
	Skills              *[]string `json:"skills"`
	AvatarURL           *string   `json:"avatar_url"`
	OnboardingCompleted *bool     `json:"onboarding_completed"`
}

// --- Response types ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	Skills              []string  `json:"skills"`
	Tier                string    `json:"tier"`
	Rating              float64   `json:"rating"`
	WalletBalance       float64   `json:"wallet_balance"`
	AvatarURL           string    `json:"avatar_url"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
