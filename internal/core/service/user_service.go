package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// UserService implements the account directory and profile updates.
type UserService struct {
	users  ports.UserRepository
	cache  ports.IdentityCache
	logger zerolog.Logger
}

// NewUserService builds a UserService. cache may be nil.
func NewUserService(users ports.UserRepository, cache ports.IdentityCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, logger: logger}
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.users.List(ctx, skip, limit)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies patch to the actor's profile and persists it. The
// account is re-read first: the actor may come from the identity cache, and a
// cached snapshot must never be written back. The cached identity is
// invalidated so the next request sees the new profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, patch ports.UserPatch) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	mergeUserPatch(user, patch)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.Email)

	return user, nil
}

// Deactivate soft-deletes the actor's account by clearing is_active.
func (s *UserService) Deactivate(ctx context.Context, actor *domain.User) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, user.Email)

	s.logger.Info().Str("user_id", user.ID).Msg("user deactivated")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("identity cache invalidation failed")
	}
}

// mergeUserPatch copies the provided fields onto user. Only fields present in
// the request body are touched; the merge is spelled out field by field so
// the updatable set stays an explicit whitelist.
func mergeUserPatch(user *domain.User, patch ports.UserPatch) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Skills != nil {
		user.Skills = *patch.Skills
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.OnboardingCompleted != nil {
		user.OnboardingCompleted = *patch.OnboardingCompleted
	}
}
