package client

import (
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
)

// The view layer branches on failure class, not on HTTP status. These
// helpers keep that branching away from the error internals.

func codeOf(err error) pkgerrors.Code {
	coded := pkgerrors.As(err)
	if coded == nil {
		return ""
	}
	return coded.Code()
}

// IsNetworkError reports a connectivity or upstream failure worth retrying.
func IsNetworkError(err error) bool {
	return codeOf(err) == pkgerrors.CodeDependency
}

// IsUnauthorized reports a missing, expired, or revoked session.
func IsUnauthorized(err error) bool {
	return codeOf(err) == pkgerrors.CodeUnauthorized
}

// IsForbidden reports a valid session lacking permission.
func IsForbidden(err error) bool {
	return codeOf(err) == pkgerrors.CodeForbidden
}

// IsNotFound reports a missing product, category, or account.
func IsNotFound(err error) bool {
	return codeOf(err) == pkgerrors.CodeNotFound
}

// IsValidationError reports a rejected form payload.
func IsValidationError(err error) bool {
	return codeOf(err) == pkgerrors.CodeValidation
}
