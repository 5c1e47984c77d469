package services

import (
	"fmt"

	"userhub/internal/models"
	"userhub/internal/repositories"
)

// RoleService handles business logic for roles.
type RoleService struct {
	roleRepo repositories.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo repositories.RoleRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
	}
}

// GetAllRoles returns every role.
func (s *RoleService) GetAllRoles() ([]models.Role, error) {
	return s.roleRepo.GetAll()
}

// FindByName returns the role with the given name or ErrNotFound.
func (s *RoleService) FindByName(name string) (*models.Role, error) {
	role, err := s.roleRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %s: %w", name, ErrNotFound)
	}
	return role, nil
}

// FindByID returns the role with the given id or ErrNotFound.
func (s *RoleService) FindByID(id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role with id %d: %w", id, ErrNotFound)
	}
	return role, nil
}

// EnsureRole returns the named role, creating it on first use. Only names
// from the known role set are accepted.
func (s *RoleService) EnsureRole(name string) (*models.Role, error) {
	if !models.ValidRoleName(name) {
		return nil, fmt.Errorf("unknown role name %q: %w", name, ErrValidation)
	}
	role, err := s.roleRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}

	role = &models.Role{Name: name}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}
