package models

import "gorm.io/gorm"

// Role is a named authority grant. Names form a closed set so a typo cannot
// silently create an authority nothing ever checks.
type Role struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex;type:varchar(50);not null"`
	Users []User `gorm:"many2many:user_roles;"`
}

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// ValidRoleName reports whether name belongs to the known role set.
func ValidRoleName(name string) bool {
	switch name {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}
