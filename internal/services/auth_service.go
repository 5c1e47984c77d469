package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/pkg/hash"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	LastName string
	Age      int
}

// AuthService handles registration, credential verification and the
// session-bound security context.
type AuthService struct {
	userRepo    repositories.UserRepository
	roleService *RoleService
	sessions    repositories.SessionRepository
	events      EventPublisher
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, roleService *RoleService, sessions repositories.SessionRepository, events EventPublisher, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		roleService: roleService,
		sessions:    sessions,
		events:      events,
		logger:      logger,
	}
}

// Register creates a new account with the default ROLE_USER role and a
// hashed password. Fails with ErrValidation on missing fields and
// ErrConflict when the username is taken.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	existing, err := s.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
	}

	userRole, err := s.roleService.EnsureRole(models.RoleUser)
	if err != nil {
		return nil, err
	}

	encoded, err := hash.Encode(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Password: encoded,
		Name:     in.Name,
		LastName: in.LastName,
		Age:      in.Age,
		Roles:    []models.Role{*userRole},
	}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index on username is the authoritative guard.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	if s.events != nil {
		if err := s.events.PublishUserEvent("user.registered", map[string]interface{}{
			"userId":   user.ID,
			"username": user.Username,
		}); err != nil {
			s.logger.Warn("failed to publish user event", zap.Error(err))
		}
	}
	return user, nil
}

// Login verifies the credentials and binds the session to the user. Any
// failure yields ErrBadCredentials without distinguishing unknown users from
// wrong passwords, and binds no session state.
func (s *AuthService) Login(sid, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !hash.Matches(password, user.Password) {
		s.logger.Warn("login failed", zap.String("username", username))
		return nil, ErrBadCredentials
	}

	if err := s.sessions.Bind(sid, user.ID); err != nil {
		return nil, err
	}
	s.logger.Info("login", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Logout clears the session's security context.
func (s *AuthService) Logout(sid string) error {
	return s.sessions.Unbind(sid)
}

// CurrentUser resolves the session to its authenticated user, or (nil, nil)
// when the session is anonymous.
func (s *AuthService) CurrentUser(sid string) (*models.User, error) {
	return s.sessions.GetUser(sid)
}
