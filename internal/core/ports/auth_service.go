package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
// Skills and Tier are optional; empty values fall back to no skills
// and the bronze tier.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Skills   []string
	Tier     string
}

// AuthService defines authentication and identity use cases.
type AuthService interface {
	// Register creates an account. Clients start with a funded wallet,
	// workers with an empty one.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed access token together
	// with the account it belongs to.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves the token subject (an email) to its account.
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
}
