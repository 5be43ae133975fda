package handler

import (
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                u.Role,
		Skills:              u.Skills,
		Tier:                u.Tier,
		Rating:              u.Rating,
		WalletBalance:       u.WalletBalance,
		AvatarURL:           u.AvatarURL,
		OnboardingCompleted: u.OnboardingCompleted,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt.UTC(),
		UpdatedAt:           u.UpdatedAt.UTC(),
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toUserPatch(req updateUserRequest) ports.UserPatch {
	return ports.UserPatch{
		Name:                req.Name,
		Skills:              req.Skills,
		AvatarURL:           req.AvatarURL,
		OnboardingCompleted: req.OnboardingCompleted,
	}
}
