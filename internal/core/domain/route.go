package domain

// Navigation targets used by redirects.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathProfile   = "/profile"
	PathFavorites = "/favorites"
	PathAdmin     = "/admin"
)

// Access is what the session store knows about the current visitor.
type Access struct {
	Authenticated bool
	Admin         bool
}

// Route declares what a view requires. RequiresAdmin implies RequiresAuth.
type Route struct {
	Path          string
	RequiresAuth  bool
	RequiresAdmin bool
}

// Decision is the outcome of evaluating a route against an Access.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToHome:
		return "redirect_to_home"
	default:
		return "unknown"
	}
}

// Target returns the redirect path for d, empty for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectToLogin:
		return PathLogin
	case RedirectToHome:
		return PathHome
	default:
		return ""
	}
}

// Evaluate decides whether a visitor may open route. It has no side effects.
func Evaluate(a Access, r Route) Decision {
	if (r.RequiresAuth || r.RequiresAdmin) && !a.Authenticated {
		return RedirectToLogin
	}
	if r.RequiresAdmin && !a.Admin {
		return RedirectToHome
	}
	return Allow
}

// The portal's views and their access declarations.
var (
	RouteHome      = Route{Path: PathHome}
	RouteLogin     = Route{Path: PathLogin}
	RouteRegister  = Route{Path: PathRegister}
	RouteProperty  = Route{Path: "/property/:id"}
	RouteProfile   = Route{Path: PathProfile, RequiresAuth: true}
	RouteFavorites = Route{Path: PathFavorites, RequiresAuth: true}
	RouteAdmin     = Route{Path: PathAdmin, RequiresAuth: true, RequiresAdmin: true}
)

// LandingPath is where a freshly logged-in user goes.
func LandingPath(role Role) string {
	if role == RoleAdmin {
		return PathAdmin
	}
	return PathHome
}
