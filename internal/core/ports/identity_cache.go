package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// IdentityCache caches authenticated accounts keyed by email so token
// resolution does not hit the database on every request. A miss returns
// (nil, nil).
type IdentityCache interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	// Invalidate drops the cached entry after a profile change.
	Invalidate(ctx context.Context, email string) error
}
