package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/services"
	"userhub/pkg/hash"
)

func newAuthService(userRepo *MockUserRepository, roleRepo *MockRoleRepository, sessions repositories.SessionRepository) *services.AuthService {
	roleService := services.NewRoleService(roleRepo)
	return services.NewAuthService(userRepo, roleService, sessions, nil, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	authService := newAuthService(mockUsers, mockRoles, repositories.NewMemorySessionRepository(mockUsers))

	userRole := &models.Role{Model: gorm.Model{ID: 2}, Name: models.RoleUser}

	mockUsers.On("GetByUsername", "alice").Return(nil, nil).Once()
	mockRoles.On("GetByName", models.RoleUser).Return(userRole, nil).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		u := args.Get(0).(*models.User)
		u.ID = 1
	}).Return(nil).Once()

	user, err := authService.Register(services.RegisterInput{Username: "alice", Password: "pw1", Name: "Alice"})
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	// The stored password is a hash of the submitted plaintext.
	assert.NotEqual(t, "pw1", user.Password)
	assert.True(t, hash.Matches("pw1", user.Password))
	// Registration always yields exactly the default role.
	assert.Equal(t, []string{models.RoleUser}, user.RoleNames())
	mockUsers.AssertExpectations(t)
	mockRoles.AssertExpectations(t)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	authService := newAuthService(mockUsers, mockRoles, repositories.NewMemorySessionRepository(mockUsers))

	_, err := authService.Register(services.RegisterInput{Username: "alice"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = authService.Register(services.RegisterInput{Password: "pw1"})
	assert.ErrorIs(t, err, services.ErrValidation)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	authService := newAuthService(mockUsers, mockRoles, repositories.NewMemorySessionRepository(mockUsers))

	existing := &models.User{Model: gorm.Model{ID: 1}, Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(existing, nil).Once()

	_, err := authService.Register(services.RegisterInput{Username: "alice", Password: "pw1"})
	assert.ErrorIs(t, err, services.ErrConflict)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterLosesUniquenessRace(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	authService := newAuthService(mockUsers, mockRoles, repositories.NewMemorySessionRepository(mockUsers))

	userRole := &models.Role{Model: gorm.Model{ID: 2}, Name: models.RoleUser}
	mockUsers.On("GetByUsername", "alice").Return(nil, nil).Once()
	mockRoles.On("GetByName", models.RoleUser).Return(userRole, nil).Once()
	// The unique index rejects the insert that lost the race.
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

	_, err := authService.Register(services.RegisterInput{Username: "alice", Password: "pw1"})
	assert.ErrorIs(t, err, services.ErrConflict)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_LoginAndLogout(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	sessions := repositories.NewMemorySessionRepository(mockUsers)
	authService := newAuthService(mockUsers, mockRoles, sessions)

	hashed, err := hash.Encode("password123")
	assert.NoError(t, err)
	user := &models.User{
		Model:    gorm.Model{ID: 42},
		Username: "testuser",
		Password: hashed,
		Roles:    []models.Role{{Model: gorm.Model{ID: 2}, Name: models.RoleUser}},
	}

	mockUsers.On("GetByUsername", "testuser").Return(user, nil).Once()
	mockUsers.On("GetByID", uint(42)).Return(user, nil)

	got, err := authService.Login("sid-1", "testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// The session now exposes the identity and its authorities.
	current, err := authService.CurrentUser("sid-1")
	assert.NoError(t, err)
	assert.NotNil(t, current)
	assert.Equal(t, []string{models.RoleUser}, current.RoleNames())

	assert.NoError(t, authService.Logout("sid-1"))
	current, err = authService.CurrentUser("sid-1")
	assert.NoError(t, err)
	assert.Nil(t, current)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	sessions := repositories.NewMemorySessionRepository(mockUsers)
	authService := newAuthService(mockUsers, mockRoles, sessions)

	hashed, err := hash.Encode("password123")
	assert.NoError(t, err)
	user := &models.User{Model: gorm.Model{ID: 42}, Username: "testuser", Password: hashed}

	mockUsers.On("GetByUsername", "testuser").Return(user, nil).Once()

	_, err = authService.Login("sid-2", "testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrBadCredentials)

	// No partial session state was created.
	current, err := authService.CurrentUser("sid-2")
	assert.NoError(t, err)
	assert.Nil(t, current)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	sessions := repositories.NewMemorySessionRepository(mockUsers)
	authService := newAuthService(mockUsers, mockRoles, sessions)

	mockUsers.On("GetByUsername", "nobody").Return(nil, nil).Once()

	_, err := authService.Login("sid-3", "nobody", "password123")
	assert.ErrorIs(t, err, services.ErrBadCredentials)
}
