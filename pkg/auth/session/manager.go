package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barbarashop/storefront-backend/pkg/config"
	redisclient "github.com/barbarashop/storefront-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(accessID string) string
}

// Manager tracks live sessions in Redis keyed by the JWT jti. Logout deletes
// the key, so a stolen token dies with the session even before it expires.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl < accessTTL {
		return nil, fmt.Errorf("session ttl (%s) must cover the access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Start records a live session for the provided access ID.
func (m *Manager) Start(ctx context.Context, accessID string, userID uuid.UUID) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	if userID == uuid.Nil {
		return fmt.Errorf("user id is required")
	}
	return m.store.Set(ctx, m.keyer.SessionKey(accessID), userID.String(), m.ttl)
}

// Revoke deletes the session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(accessID))
}

// HasSession reports whether the provided access ID still has a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.SessionKey(accessID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewAccessID produces a stable identifier used as the JWT jti/Redis key.
func NewAccessID() string {
	return uuid.NewString()
}
