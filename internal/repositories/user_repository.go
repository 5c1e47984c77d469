package repositories

import (
	"errors"

	"userhub/internal/models"
)

// ErrDuplicate is returned by Create when a unique constraint rejects the
// row, e.g. a concurrent registration with the same username.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository defines the interface for user data access. Lookup methods
// return (nil, nil) when no row matches so callers can branch on presence.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	ReplaceRoles(user *models.User, roles []models.Role) error
}
