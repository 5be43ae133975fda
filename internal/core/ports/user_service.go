package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// UserPatch carries optional profile changes. Nil fields are left untouched.
type UserPatch struct {
	Name                *string
	Skills              *[]string
	AvatarURL           *string
	OnboardingCompleted *bool
}

// UserService defines the account directory and profile use cases.
type UserService interface {
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile applies patch to the acting user's own profile.
	UpdateProfile(ctx context.Context, actor *domain.User, patch UserPatch) (*domain.User, error)
	// Deactivate soft-deletes the acting user's account. Existing tokens stay
	// valid until they expire, but login is refused afterwards.
	Deactivate(ctx context.Context, actor *domain.User) error
}
