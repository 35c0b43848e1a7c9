package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleCoach      Role = "coach"
	RolePlayer     Role = "player"
	RoleScout      Role = "scout"
	RoleParent     Role = "parent"
)

// Valid reports whether the role is one of the closed set. Anything read
// from storage that fails this check is treated as access denied, never
// as a default role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCoach, RolePlayer, RoleScout, RoleParent:
		return true
	}
	return false
}

type User struct {
	ID            string
	Email         string
	PasswordHash  []byte
	FullName      string
	Role          Role
	Phone         string
	AcademyID     *string // nil for system accounts (super_admin)
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
