package app

import "hotelhub/internal/domain"

const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	HomeRoute      = "/"
)

// SessionReader is the part of the session a guard looks at.
type SessionReader interface {
	User() *domain.UserProfile
}

// Guard decides whether a protected view may render. It is a pure function of
// the session and is evaluated on every render.
func Guard(s SessionReader) (allowed bool, redirect string) {
	if s == nil || s.User() == nil {
		return false, LoginRoute
	}
	return true, ""
}
