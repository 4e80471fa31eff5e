package constants

import (
	"fmt"
	"strings"
)

// Role is the access role carried in the Clerk session token
// (publicMetadata.role). RoleNone is what an absent or unknown claim
// resolves to; it is never granted access to a role-gated procedure.
type Role string

const (
	RoleNone      Role = "none"
	RoleAdmin     Role = "admin"
	RolePrincipal Role = "principal"
	RoleClerk     Role = "clerk"
	RoleTeacher   Role = "teacher"
	RoleStudent   Role = "student"
)

// ParseRole resolves a claim value by explicit lookup.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RolePrincipal:
		return RolePrincipal
	case RoleClerk:
		return RoleClerk
	case RoleTeacher:
		return RoleTeacher
	case RoleStudent:
		return RoleStudent
	default:
		return RoleNone
	}
}

func (r Role) Valid() bool { return r != RoleNone && ParseRole(string(r)) == r }

func (r Role) In(roles []Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []Role{
		RoleAdmin,
		RolePrincipal,
		RoleClerk,
		RoleTeacher,
		RoleStudent,
	}

	StaffRoles = []Role{
		RoleAdmin,
		RolePrincipal,
		RoleClerk,
		RoleTeacher,
	}

	ManagementRoles = []Role{
		RoleAdmin,
		RolePrincipal,
		RoleClerk,
	}

	AdminRoles = []Role{
		RoleAdmin,
		RolePrincipal,
	}
)

const ErrRoleNotAllowed = "Role %q is not allowed to call %s"

func RoleError(role Role, procedure string) string {
	return fmt.Sprintf(ErrRoleNotAllowed, role, procedure)
}

// Designation is the staff position stored on employees and users.
type Designation string

const (
	DesignationPrincipal Designation = "Principal"
	DesignationAdmin     Designation = "Admin"
	DesignationHead      Designation = "Head"
	DesignationClerk     Designation = "Clerk"
	DesignationTeacher   Designation = "Teacher"
	DesignationWorker    Designation = "Worker"
)

// DesignationForRole maps an access role to the closest designation.
func DesignationForRole(r Role) Designation {
	switch r {
	case RoleAdmin:
		return DesignationAdmin
	case RolePrincipal:
		return DesignationPrincipal
	case RoleClerk:
		return DesignationClerk
	case RoleTeacher:
		return DesignationTeacher
	default:
		return DesignationWorker
	}
}
