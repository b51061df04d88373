package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User represents an account that can authenticate against the admin API.
type User struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"not null"` // "-" means don't include in JSON responses
	Roles        []*Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

// SetPassword hashes the given password and sets it on the user model.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the given password matches the user's hashed password.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// HasRole checks whether the user holds the named role.
// Assumes u.Roles is preloaded.
func (u *User) HasRole(roleValue string) bool {
	for _, role := range u.Roles {
		if role == nil {
			continue
		}
		if role.Value == roleValue {
			return true
		}
	}
	return false
}

// HasAnyRole checks whether the user holds at least one of the named roles.
func (u *User) HasAnyRole(roleValues []string) bool {
	for _, v := range roleValues {
		if u.HasRole(v) {
			return true
		}
	}
	return false
}

// RoleValues returns the list of role values held by the user, used as the
// roles claim of issued tokens.
func (u *User) RoleValues() []string {
	values := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		if role == nil {
			continue
		}
		values = append(values, role.Value)
	}
	return values
}
