package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"userhub/internal/models"
	"userhub/internal/services"
)

func TestRoleService_FindByName(t *testing.T) {
	mockRoles := new(MockRoleRepository)
	roleService := services.NewRoleService(mockRoles)

	role := &models.Role{Model: gorm.Model{ID: 1}, Name: models.RoleAdmin}
	mockRoles.On("GetByName", models.RoleAdmin).Return(role, nil).Once()

	got, err := roleService.FindByName(models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, role.Name, got.Name)

	mockRoles.On("GetByName", "ROLE_NOPE").Return(nil, nil).Once()
	_, err = roleService.FindByName("ROLE_NOPE")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRoleService_FindByID(t *testing.T) {
	mockRoles := new(MockRoleRepository)
	roleService := services.NewRoleService(mockRoles)

	mockRoles.On("GetByID", uint(9)).Return(nil, nil).Once()
	_, err := roleService.FindByID(9)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRoleService_EnsureRoleCreatesOnFirstUse(t *testing.T) {
	mockRoles := new(MockRoleRepository)
	roleService := services.NewRoleService(mockRoles)

	mockRoles.On("GetByName", models.RoleUser).Return(nil, nil).Once()
	mockRoles.On("Create", mock.AnythingOfType("*models.Role")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Role).ID = 2
	}).Return(nil).Once()

	role, err := roleService.EnsureRole(models.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role.Name)
	assert.Equal(t, uint(2), role.ID)
	mockRoles.AssertExpectations(t)
}

func TestRoleService_EnsureRoleReturnsExisting(t *testing.T) {
	mockRoles := new(MockRoleRepository)
	roleService := services.NewRoleService(mockRoles)

	existing := &models.Role{Model: gorm.Model{ID: 1}, Name: models.RoleAdmin}
	mockRoles.On("GetByName", models.RoleAdmin).Return(existing, nil).Once()

	role, err := roleService.EnsureRole(models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, role.ID)
	mockRoles.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRoleService_EnsureRoleRejectsUnknownName(t *testing.T) {
	mockRoles := new(MockRoleRepository)
	roleService := services.NewRoleService(mockRoles)

	_, err := roleService.EnsureRole("ROLE_TYPO")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockRoles.AssertNotCalled(t, "Create", mock.Anything)
}
