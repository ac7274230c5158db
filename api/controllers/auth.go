package controllers

import (
	"net"
	"net/http"
	"strings"

	"github.com/barbarashop/storefront-backend/api/middleware"
	"github.com/barbarashop/storefront-backend/api/responses"
	"github.com/barbarashop/storefront-backend/api/validators"
	"github.com/barbarashop/storefront-backend/internal/auth"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body, clientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthRegister creates an account and returns a fresh session.
func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthVerify echoes the account tied to the presented token.
func AuthVerify(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Verify(r.Context(), middleware.BearerToken(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the presented token's session.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"logged_out": true})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
