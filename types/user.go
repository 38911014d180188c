package types

import "strings"

// Role is the portal role a user signs in with. It also prefixes most
// backend routes (e.g. /company/job/...).
type Role string

// Supported roles.
const (
	RoleCandidate  Role = "candidate"
	RoleCompany    Role = "company"
	RoleEmployee   Role = "employee"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole normalizes a role string. The second return value is false
// when the value is not one of the supported roles.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleCandidate, RoleCompany, RoleEmployee, RoleSuperAdmin:
		return role, true
	default:
		return "", false
	}
}

// CanManageJobs reports whether the role may post, edit, and delete jobs
// and move applicants between stages.
func (r Role) CanManageJobs() bool {
	return r == RoleCompany || r == RoleEmployee || r == RoleSuperAdmin
}

// User represents the authenticated account as returned by the portal API.
type User struct {
	// ID is the backend identifier of the user.
	ID string `json:"_id"`

	// Role indicates which part of the portal the user operates in.
	Role Role `json:"role"`

	// Name is the user's display name.
	Name string `json:"name"`

	// Email is the user's email address.
	Email string `json:"email"`
}

// Company is a registered employer as listed for the super-admin.
type Company struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Industry   string `json:"industry"`
	IsVerified bool   `json:"isVerified"`
}
