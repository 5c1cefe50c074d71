package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type AdminRole string

const (
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleEditor AdminRole = "editor"
)

// Valid reports whether r is a known role.
func (r AdminRole) Valid() bool {
	return r == AdminRoleAdmin || r == AdminRoleEditor
}

// AdminUser can sign in to the back-office.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         AdminRole `json:"role"`
	LastLoginAt  null.Time `json:"lastLoginAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanDelete reports whether the user may remove records.
func (u *AdminUser) CanDelete() bool {
	return u.Role == AdminRoleAdmin
}
