package attend

// Role is the closed set of user roles issued by the backend. The scanner
// view doubles as the admin landing and is also reachable unauthenticated.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleHOD     Role = "hod"
	RoleStudent Role = "student"
)

// RolePublic marks a route that requires no authentication.
const RolePublic Role = ""

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleStudent:
		return true
	default:
		return false
	}
}

// Landing returns the route a user of this role is sent to after login or
// after a role mismatch. Total over the role set: anything outside hod and
// student falls through to the scanner view, matching the backend's admin
// default, so a redirect target always exists.
func (r Role) Landing() string {
	switch r {
	case RoleHOD:
		return RouteHOD
	case RoleStudent:
		return RouteStudent
	default:
		return RouteScanner
	}
}

// AllRoles returns all predefined roles.
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleHOD,
		RoleStudent,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
