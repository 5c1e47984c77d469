package repositories

import "userhub/internal/models"

// SessionRepository binds sid cookies to authenticated users. GetUser returns
// (nil, nil) for unknown or anonymous sessions so callers can branch on
// presence.
type SessionRepository interface {
	Bind(sid string, userID uint) error
	Unbind(sid string) error
	GetUser(sid string) (*models.User, error)
}
