package users

import (
	"time"

	"github.com/barbarashop/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the wire representation of an account. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel maps the storage model to the wire shape.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
