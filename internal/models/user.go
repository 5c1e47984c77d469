package models

import "gorm.io/gorm"

// User represents an account of the service. Password always holds a bcrypt
// hash once the user has been persisted; plaintext only exists transiently in
// request payloads before the service encodes it.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=3,max=100"`
	Password string `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	Name     string `gorm:"type:varchar(100)"`
	LastName string `gorm:"type:varchar(100)"`
	Age      int
	Roles    []Role `gorm:"many2many:user_roles;"`
}

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user carries the given role name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
