package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// clientStartingBalance is credited to every new client account so it can
// fund projects right away. Workers start at zero and earn through payouts.
const clientStartingBalance = 5000.0

// AuthService implements registration, login and token-subject resolution.
type AuthService struct {
	users     ports.UserRepository
	cache     ports.IdentityCache
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. cache may be nil, in which case every
// CurrentUser call goes to the repository.
func NewAuthService(users ports.UserRepository, cache ports.IdentityCache, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, cache: cache, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Role != domain.RoleClient && input.Role != domain.RoleWorker {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	balance := 0.0
	if input.Role == domain.RoleClient {
		balance = clientStartingBalance
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}
	tier := input.Tier
	if tier == "" {
		tier = domain.TierBronze
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: string(hash),
		Role:           input.Role,
		Skills:         skills,
		WalletBalance:  balance,
		Tier:           tier,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, domain.ErrInactiveUser
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// CurrentUser resolves the token subject to its account, trying the identity
// cache first. Cache failures degrade to a repository lookup.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("identity cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Msg("identity cache write failed")
		}
	}
	return user, nil
}

// generateToken signs an HS256 token whose subject is the user's email.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
