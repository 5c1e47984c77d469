package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/pkg/hash"
)

// EventPublisher publishes user lifecycle events to a message broker.
// *rabbitmq.Client satisfies it; a nil publisher disables publishing.
type EventPublisher interface {
	PublishUserEvent(event string, payload map[string]interface{}) error
}

// UserService handles business logic for user accounts.
type UserService struct {
	userRepo    repositories.UserRepository
	roleService *RoleService
	events      EventPublisher
	logger      *zap.Logger
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, roleService *RoleService, events EventPublisher, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roleService: roleService,
		events:      events,
		logger:      logger,
	}
}

// GetAllUsers returns every user with roles loaded.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID returns the user or ErrNotFound.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// GetUserByUsername returns the user, or (nil, nil) when no such user
// exists, so callers can branch on presence.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// SaveUser persists the user. A user without an identity is created and its
// plaintext password hashed. An existing user is updated; the password is
// re-encoded when the incoming value differs from the stored hash, so the
// stored field is a bcrypt hash after every write path.
func (s *UserService) SaveUser(user *models.User) error {
	if user.ID == 0 {
		encoded, err := hash.Encode(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = encoded

		if err := s.userRepo.Create(user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return fmt.Errorf("username %q: %w", user.Username, ErrConflict)
			}
			return err
		}
		s.logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
		return nil
	}

	existing, err := s.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	if user.Password != existing.Password {
		encoded, err := hash.Encode(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = encoded
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("username %q: %w", user.Username, ErrConflict)
		}
		return err
	}
	s.logger.Info("user updated", zap.Uint("user_id", user.ID))
	return nil
}

// DeleteUser removes the user by id or fails with ErrNotFound.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id), zap.String("username", user.Username))
	s.publish("user.deleted", map[string]interface{}{
		"userId":   id,
		"username": user.Username,
	})
	return nil
}

// UpdateUserRoles replaces the user's full role set with the roles named by
// roleIDs. Fails with ErrNotFound when the user or any role id is
// unresolvable; nothing is written in that case.
func (s *UserService) UpdateUserRoles(userID uint, roleIDs []uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	roles := make([]models.Role, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		role, err := s.roleService.FindByID(roleID)
		if err != nil {
			return err
		}
		roles = append(roles, *role)
	}

	if err := s.userRepo.ReplaceRoles(user, roles); err != nil {
		return err
	}
	s.logger.Info("user roles replaced",
		zap.Uint("user_id", userID),
		zap.Strings("roles", user.RoleNames()))
	s.publish("user.roles_updated", map[string]interface{}{
		"userId": userID,
		"roles":  user.RoleNames(),
	})
	return nil
}

// publish sends a lifecycle event when a broker is configured. Publish
// failures are logged, never surfaced to the caller.
func (s *UserService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(event, payload); err != nil {
		s.logger.Warn("failed to publish user event", zap.String("event", event), zap.Error(err))
	}
}
