package models

import "time"

// Session binds a browser's sid cookie to an authenticated user. UserID is
// NULL while the session is anonymous; logout resets it to NULL instead of
// deleting the row so the cookie can be reused for a later login.
type Session struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   *uint  `gorm:"index"`
	LastSeen time.Time
}
