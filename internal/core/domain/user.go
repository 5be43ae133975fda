package domain

import "time"

const (
	RoleClient = "client"
	RoleWorker = "worker"
)

// Reputation tiers. Stored and returned, never interpreted by this service.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// User models an authenticated actor in the marketplace. Role is fixed at
// registration; no endpoint mutates it afterwards.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name,omitempty"`
	HashedPassword      string    `json:"-"`
	Role                string    `json:"role"`
	Skills              []string  `json:"skills"`
	Rating              float64   `json:"rating"`
	WalletBalance       float64   `json:"wallet_balance"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	Tier                string    `json:"tier"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// IsClient reports whether the user acts as a project owner.
func (u *User) IsClient() bool { return u.Role == RoleClient }

// IsWorker reports whether the user acts as a task assignee.
func (u *User) IsWorker() bool { return u.Role == RoleWorker }
