package auth

import "github.com/barbarashop/storefront-backend/internal/users"

// LoginRequest is the credentials payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for creating an admin account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// SessionResponse carries a freshly minted token plus the account it belongs
// to. Both login and register return it.
type SessionResponse struct {
	Token string        `json:"token"`
	User  users.UserDTO `json:"user"`
}

// VerifyResponse echoes the account tied to a still-valid token.
type VerifyResponse struct {
	Valid bool          `json:"valid"`
	User  users.UserDTO `json:"user"`
}
