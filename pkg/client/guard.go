package client

// Guard decides where a navigation should land based on session presence.
// The check is advisory: it looks only at whether a token exists, not at
// whether the server still accepts it.
type Guard struct {
	loginRoute string
	protected  map[string]bool
}

// NewGuard creates a guard that redirects to the given login route
func NewGuard(loginRoute string) *Guard {
	return &Guard{
		loginRoute: loginRoute,
		protected:  make(map[string]bool),
	}
}

// Protect marks routes as requiring authentication
func (g *Guard) Protect(routes ...string) {
	for _, route := range routes {
		g.protected[route] = true
	}
}

// Resolve returns the route the navigation should proceed to: the login
// route when the target requires authentication and no token is present,
// otherwise the target itself.
func (g *Guard) Resolve(target string, session Session) string {
	if g.protected[target] && !session.Authenticated() {
		return g.loginRoute
	}
	return target
}
