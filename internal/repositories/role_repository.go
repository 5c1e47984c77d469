package repositories

import "userhub/internal/models"

// RoleRepository defines the interface for role data access. Lookup methods
// return (nil, nil) when no row matches.
type RoleRepository interface {
	Create(role *models.Role) error
	GetByID(id uint) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	GetAll() ([]models.Role, error)
}
