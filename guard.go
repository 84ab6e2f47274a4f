package attend

// Route paths served by the single-page client.
const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteScanner       = "/scanner"
	RouteRegister      = "/register"
	RouteAttendance    = "/attendance"
	RouteHOD           = "/hod"
	RouteStudent       = "/student"
	RouteLeave         = "/leave"
	RouteLeaveRequests = "/leave-requests"
	RouteStudents      = "/students"
)

// GuardAction is what the guard tells the shell to do with a navigation
// attempt.
type GuardAction int

const (
	// ActionRender shows the requested view.
	ActionRender GuardAction = iota
	// ActionLoading shows a neutral placeholder while the session resolves.
	ActionLoading
	// ActionRedirect navigates to Decision.Target instead.
	ActionRedirect
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Action GuardAction
	Target string
}

// Guard decides whether a session may render a route. It is pure over its
// inputs and re-evaluated on every navigation attempt and session change.
type Guard struct {
	routes map[string]Role
}

// NewGuard returns a guard over the client's route table.
func NewGuard() *Guard {
	return &Guard{routes: defaultRoutes()}
}

// defaultRoutes declares the required role per route. RolePublic routes
// render for anyone, including anonymous visitors. Every role's landing
// route is reachable under that same role (or public), so mismatch
// redirects terminate.
func defaultRoutes() map[string]Role {
	return map[string]Role{
		RouteHome:          RolePublic,
		RouteLogin:         RolePublic,
		RouteScanner:       RolePublic,
		RouteRegister:      RolePublic,
		RouteAttendance:    RoleStudent,
		RouteStudent:       RoleStudent,
		RouteLeave:         RoleStudent,
		RouteHOD:           RoleHOD,
		RouteLeaveRequests: RoleHOD,
		RouteStudents:      RoleHOD,
	}
}

// RequiredRole reports the declared role for a route, and whether the route
// exists at all.
func (g *Guard) RequiredRole(path string) (Role, bool) {
	role, ok := g.routes[path]
	return role, ok
}

// Evaluate decides a navigation attempt:
//   - unknown paths always redirect to the root public route
//   - public routes render regardless of session state
//   - a still-loading session renders the placeholder, never a redirect
//   - anonymous users are sent to the login route
//   - a role mismatch redirects to the user's own landing, never the
//     requested route
func (g *Guard) Evaluate(session Session, path string) Decision {
	required, known := g.routes[path]
	if !known {
		return Decision{Action: ActionRedirect, Target: RouteHome}
	}

	if required == RolePublic {
		return Decision{Action: ActionRender}
	}

	if session.Loading {
		return Decision{Action: ActionLoading}
	}

	if session.User == nil {
		return Decision{Action: ActionRedirect, Target: RouteLogin}
	}

	if session.User.Role() == required {
		return Decision{Action: ActionRender}
	}

	return Decision{Action: ActionRedirect, Target: session.User.Role().Landing()}
}
