package auth

import (
	"context"
	"testing"
	"time"

	"github.com/barbarashop/storefront-backend/pkg/config"
	"github.com/barbarashop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUserRepo) add(user *models.User) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, gorm.ErrDuplicatedKey
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.add(user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if user, ok := s.byID[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	live map[string]uuid.UUID
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{live: map[string]uuid.UUID{}}
}

func (s *stubSessionManager) Start(_ context.Context, accessID string, userID uuid.UUID) error {
	s.live[accessID] = userID
	return nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(s.live, accessID)
	return nil
}

func (s *stubSessionManager) HasSession(_ context.Context, accessID string) (bool, error) {
	_, ok := s.live[accessID]
	return ok, nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(context.Context, string, string) error { return nil }

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string, string) error {
	return pkgerrors.New(pkgerrors.CodeRateLimit, tooManyAttemptsMessage)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "barbarashop",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}
}

type testDeps struct {
	repo    *stubUserRepo
	session *stubSessionManager
}

func newTestService(t *testing.T, limiter loginLimiter) (Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		repo:    newStubUserRepo(),
		session: newStubSessionManager(),
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       deps.repo,
		SessionManager: deps.session,
		RateLimiter:    limiter,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc, deps
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Barbara",
		PasswordHash: hash,
		IsActive:     true,
	}
	repo.add(user)
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Barbara@Shop.dev",
		Password: "opensesame99",
	}, "203.0.113.7")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "barbara@shop.dev", resp.User.Email)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.Len(t, deps.session.live, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "barbara@shop.dev",
		Password: "wrong",
	}, "")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService(t, allowAllLimiter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@shop.dev",
		Password: "whatever1",
	}, "")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
	assert.Contains(t, err.Error(), invalidCredentialsMessage)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	user := seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")
	user.IsActive = false

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "barbara@shop.dev",
		Password: "opensesame99",
	}, "")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginRateLimited(t *testing.T) {
	svc, deps := newTestService(t, denyLimiter{})
	seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "barbara@shop.dev",
		Password: "opensesame99",
	}, "203.0.113.7")
	assertCode(t, err, pkgerrors.CodeRateLimit)
}

func TestRegisterCreatesAndLogsIn(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Shop.dev",
		Name:     "  New Admin  ",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@shop.dev", resp.User.Email)
	assert.Equal(t, "New Admin", resp.User.Name)
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, deps.session.live, 1)

	// the stored hash verifies
	stored := deps.repo.byEmail["new@shop.dev"]
	ok, err := security.VerifyPassword("longenough", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t, allowAllLimiter{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "X", Password: "longenough"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "longenough"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Name: "X", Password: "short"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "barbara@shop.dev",
		Name:     "Clone",
		Password: "longenough",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestVerifyAndLogout(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "barbara@shop.dev",
		Password: "opensesame99",
	}, "")
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "barbara@shop.dev", verified.User.Email)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	// the token still parses but the session is gone
	_, err = svc.Verify(ctx, resp.Token)
	assertCode(t, err, pkgerrors.CodeUnauthorized)

	assertCode(t, svc.Logout(ctx, resp.Token), pkgerrors.CodeUnauthorized)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	svc, _ := newTestService(t, allowAllLimiter{})
	ctx := context.Background()

	_, err := svc.Verify(ctx, "")
	assertCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.Verify(ctx, "not.a.jwt")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestVerifyInactiveUser(t *testing.T) {
	svc, deps := newTestService(t, allowAllLimiter{})
	user := seedUser(t, deps.repo, "barbara@shop.dev", "opensesame99")
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "barbara@shop.dev",
		Password: "opensesame99",
	}, "")
	require.NoError(t, err)

	user.IsActive = false
	_, err = svc.Verify(ctx, resp.Token)
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, code, coded.Code())
}
