package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barbarashop/storefront-backend/pkg/config"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
)

const tooManyAttemptsMessage = "too many login attempts, try again later"

type counterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type rateLimitKeyer interface {
	RateLimitKey(scope, id string) string
}

// LoginRateLimiter throttles login attempts per email and per client IP
// using fixed windows backed by Redis counters.
type LoginRateLimiter struct {
	store      counterStore
	keyer      rateLimitKeyer
	window     time.Duration
	emailLimit int
	ipLimit    int
}

type redisCounter interface {
	counterStore
	rateLimitKeyer
}

// NewLoginRateLimiter builds a limiter from config. A zero or negative limit
// disables that dimension.
func NewLoginRateLimiter(store redisCounter, cfg config.AuthRateLimitConfig) (*LoginRateLimiter, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store is required")
	}
	if cfg.LoginWindow <= 0 {
		return nil, fmt.Errorf("login window must be positive")
	}
	return &LoginRateLimiter{
		store:      store,
		keyer:      store,
		window:     cfg.LoginWindow,
		emailLimit: cfg.LoginEmailLimit,
		ipLimit:    cfg.LoginIPLimit,
	}, nil
}

// Allow records one attempt and returns a rate-limit error once either the
// email or the IP budget for the current window is spent.
func (l *LoginRateLimiter) Allow(ctx context.Context, email, clientIP string) error {
	if err := l.check(ctx, "login:email", strings.ToLower(strings.TrimSpace(email)), l.emailLimit); err != nil {
		return err
	}
	return l.check(ctx, "login:ip", strings.TrimSpace(clientIP), l.ipLimit)
}

func (l *LoginRateLimiter) check(ctx context.Context, scope, id string, limit int) error {
	if limit <= 0 || id == "" {
		return nil
	}
	key := l.keyer.RateLimitKey(scope, id)
	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit counter")
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.window); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit expiry")
		}
	}
	if count > int64(limit) {
		return pkgerrors.New(pkgerrors.CodeRateLimit, tooManyAttemptsMessage)
	}
	return nil
}
