package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"userhub/internal/models"
)

// GORMSessionRepository is a GORM implementation of SessionRepository backed
// by a sessions table.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

// Bind associates the session with a user, creating the row if needed.
func (r *GORMSessionRepository) Bind(sid string, userID uint) error {
	sess := models.Session{ID: sid, UserID: &userID, LastSeen: time.Now()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "last_seen"}),
	}).Create(&sess).Error
	if err != nil {
		return fmt.Errorf("failed to bind session %s: %w", sid, err)
	}
	return nil
}

// Unbind clears the user association, returning the session to anonymous.
func (r *GORMSessionRepository) Unbind(sid string) error {
	err := r.db.Model(&models.Session{}).
		Where("id = ?", sid).
		Updates(map[string]interface{}{"user_id": nil, "last_seen": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("failed to unbind session %s: %w", sid, err)
	}
	return nil
}

// GetUser resolves the session to its bound user with roles preloaded.
func (r *GORMSessionRepository) GetUser(sid string) (*models.User, error) {
	var sess models.Session
	if err := r.db.First(&sess, "id = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session %s: %w", sid, err)
	}
	if sess.UserID == nil {
		return nil, nil
	}

	var user models.User
	if err := r.db.Preload("Roles").First(&user, *sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// User deleted after login; the session is stale.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session user %d: %w", *sess.UserID, err)
	}
	return &user, nil
}
