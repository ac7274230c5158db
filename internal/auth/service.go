package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barbarashop/storefront-backend/internal/users"
	pkgAuth "github.com/barbarashop/storefront-backend/pkg/auth"
	"github.com/barbarashop/storefront-backend/pkg/auth/session"
	"github.com/barbarashop/storefront-backend/pkg/config"
	"github.com/barbarashop/storefront-backend/pkg/db"
	"github.com/barbarashop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/security"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, clientIP string) (*SessionResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error)
	Verify(ctx context.Context, token string) (*VerifyResponse, error)
	Logout(ctx context.Context, token string) error
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Start(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type loginLimiter interface {
	Allow(ctx context.Context, email, clientIP string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	RateLimiter    loginLimiter
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	users       userRepository
	session     sessionManager
	rateLimiter loginLimiter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.RateLimiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		rateLimiter: params.RateLimiter,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// Login authenticates the credentials and opens a new session.
func (s *service) Login(ctx context.Context, req LoginRequest, clientIP string) (*SessionResponse, error) {
	if err := s.rateLimiter.Allow(ctx, req.Email, clientIP); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Register creates the account and logs it straight in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.openSession(ctx, user)
}

// Verify checks the token signature, expiry, and live session, and returns
// the account it belongs to.
func (s *service) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	claims, err := s.validSession(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	return &VerifyResponse{Valid: true, User: users.FromModel(user)}, nil
}

// Logout revokes the token's session. The token itself stays valid until it
// expires but the session check will fail from now on.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.validSession(ctx, token)
	if err != nil {
		return err
	}
	if err := s.session.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) validSession(ctx context.Context, token string) (*pkgAuth.AccessTokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing token")
	}
	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}
	alive, err := s.session.HasSession(ctx, claims.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check session")
	}
	if !alive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	return claims, nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*SessionResponse, error) {
	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Start(ctx, accessID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	return &SessionResponse{
		Token: token,
		User:  users.FromModel(user),
	}, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}
