package tui

import (
	"strings"

	"taskwave/internal/session"
)

// Route is a screen path.
type Route string

const (
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteTasks    Route = "/tasks"
)

// Resolve maps a path to its route. Unknown paths go to the login screen.
// The task screen is not gated here: it reports a missing session itself.
func Resolve(path string) Route {
	p := strings.TrimSpace(path)
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	switch Route(p) {
	case RouteLogin, RouteRegister, RouteTasks:
		return Route(p)
	}
	return RouteLogin
}

// StartRoute is the screen shown when no route was asked for.
func StartRoute(sessions *session.Manager) Route {
	if _, ok := sessions.Active(); ok {
		return RouteTasks
	}
	return RouteLogin
}
