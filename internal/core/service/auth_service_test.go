package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users            map[string]*domain.User // keyed by id
	createErr        error
	updateErr        error
	findByEmailCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.findByEmailCalls++
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int) ([]*domain.User, error) {
	var all []*domain.User
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	if skip > len(all) {
		return nil, nil
	}
	all = all[skip:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubIdentityCache struct {
	entries     map[string]*domain.User
	getErr      error
	setErr      error
	invalidated []string
	hits        int
}

func newStubIdentityCache() *stubIdentityCache {
	return &stubIdentityCache{entries: make(map[string]*domain.User)}
}

func (c *stubIdentityCache) Get(_ context.Context, email string) (*domain.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	u, ok := c.entries[email]
	if !ok {
		return nil, nil
	}
	c.hits++
	return cloneUser(u), nil
}

func (c *stubIdentityCache) Set(_ context.Context, user *domain.User) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[user.Email] = cloneUser(user)
	return nil
}

func (c *stubIdentityCache) Invalidate(_ context.Context, email string) error {
	c.invalidated = append(c.invalidated, email)
	delete(c.entries, email)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

const testSecret = "test-secret"

func newAuthSvc(repo ports.UserRepository, cache ports.IdentityCache) *AuthService {
	return NewAuthService(repo, cache, testSecret, time.Hour, discardLogger)
}

// seedUser registers a user straight through the service so the stored hash
// is a real bcrypt hash.
func seedUser(t *testing.T, svc *AuthService, email, password, role string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    email,
		Password: password,
		Name:     "Someone",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed register failed: %v", err)
	}
	return user
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_ClientStartsFunded(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "pass123",
		Name:     "Alice",
		Role:     domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated id")
	}
	if user.WalletBalance != clientStartingBalance {
		t.Errorf("expected starting balance %v, got %v", clientStartingBalance, user.WalletBalance)
	}
	if user.Tier != domain.TierBronze {
		t.Errorf("expected tier %q, got %q", domain.TierBronze, user.Tier)
	}
	if !user.IsActive {
		t.Error("new accounts must be active")
	}
	if user.Skills == nil || len(user.Skills) != 0 {
		t.Errorf("expected empty skills slice, got %v", user.Skills)
	}
	if user.HashedPassword == "pass123" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_WorkerStartsUnfunded(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	user := seedUser(t, svc, "bob@example.com", "hunter2", domain.RoleWorker)

	if user.WalletBalance != 0 {
		t.Errorf("workers must start at zero balance, got %v", user.WalletBalance)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)
	seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "other",
		Role:     domain.RoleWorker,
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "eve@example.com",
		Password: "pass",
		Role:     "admin",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_KeepsProvidedSkillsAndTier(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Password: "hunter2",
		Role:     domain.RoleWorker,
		Skills:   []string{"go", "sql"},
		Tier:     "gold",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(user.Skills) != 2 || user.Skills[0] != "go" {
		t.Errorf("expected provided skills to be kept, got %v", user.Skills)
	}
	if user.Tier != "gold" {
		t.Errorf("expected tier gold, got %q", user.Tier)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)
	seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %s", user.Email)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "alice@example.com" {
		t.Errorf("expected subject to be the email, got %v", claims["sub"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)
	seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown emails must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)
	user := seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	user.IsActive = false
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CurrentUser
// ---------------------------------------------------------------------------

func TestAuthService_CurrentUser_CacheHit(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	svc := newAuthSvc(repo, cache)
	user := seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)
	_ = cache.Set(context.Background(), user)

	repo.findByEmailCalls = 0
	got, err := svc.CurrentUser(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("wrong user resolved: %s", got.ID)
	}
	if repo.findByEmailCalls != 0 {
		t.Errorf("cache hit must not touch the repository, got %d lookups", repo.findByEmailCalls)
	}
}

func TestAuthService_CurrentUser_CacheMissFillsCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	svc := newAuthSvc(repo, cache)
	user := seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	got, err := svc.CurrentUser(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("wrong user resolved: %s", got.ID)
	}
	if _, ok := cache.entries["alice@example.com"]; !ok {
		t.Error("resolved user must be written back to the cache")
	}
}

func TestAuthService_CurrentUser_CacheErrorDegradesToRepo(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	cache.getErr = errors.New("redis timeout")
	svc := newAuthSvc(repo, cache)
	seedUser(t, svc, "alice@example.com", "pass123", domain.RoleClient)

	got, err := svc.CurrentUser(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("cache failure must not break resolution: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("wrong user resolved: %s", got.Email)
	}
}

func TestAuthService_CurrentUser_UnknownSubject(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	_, err := svc.CurrentUser(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
