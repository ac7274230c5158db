package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/barbarashop/storefront-backend/api/responses"
	pkgAuth "github.com/barbarashop/storefront-backend/pkg/auth"
	"github.com/barbarashop/storefront-backend/pkg/auth/session"
	"github.com/barbarashop/storefront-backend/pkg/config"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxUserEmail, claims.Email)

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// BearerToken exposes the raw token for handlers that consume it directly.
func BearerToken(r *http.Request) string {
	return bearerToken(r)
}
