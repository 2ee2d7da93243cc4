package entity

import "github.com/google/uuid"

type Role string

const (
	RoleEmployee  Role = "employee"
	RoleHR        Role = "hr"
	RoleApplicant Role = "applicant"
)

// Identity is the authenticated caller for the duration of one request.
// It is produced by the auth middleware from verified token claims and is
// never mutated by the agent core.
type Identity struct {
	UserId     uuid.UUID
	Role       Role
	Name       string
	Attributes map[string]string
}

// IsValidRole reports whether the given role string is one of the known roles.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleEmployee, RoleHR, RoleApplicant:
		return true
	}
	return false
}

// CanReadOthers reports whether the role has cross-user read rights.
func (r Role) CanReadOthers() bool {
	return r == RoleHR
}
