// Package guard decides whether a session may see a protected screen.
package guard

import (
	"strings"

	"github.com/campusmaster/campus/internal/session"
)

// Requirement is the role a protected screen demands.
type Requirement int

const (
	// RequireNone admits any authenticated session.
	RequireNone Requirement = iota
	RequireAdmin
	RequireTeacher
	// RequireUser admits sessions that are neither Admin nor Teacher.
	RequireUser
)

func (r Requirement) String() string {
	switch r {
	case RequireAdmin:
		return "admin"
	case RequireTeacher:
		return "teacher"
	case RequireUser:
		return "user"
	default:
		return "none"
	}
}

// Decision is the outcome of Check.
type Decision int

const (
	// Loading means the session is unresolved; show a placeholder and decide nothing.
	Loading Decision = iota
	// RedirectLogin means the session is anonymous.
	RedirectLogin
	// Denied means the session is authenticated but lacks the required role.
	Denied
	// Allow means the screen may load.
	Allow
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case Denied:
		return "denied"
	case Allow:
		return "allow"
	default:
		return "loading"
	}
}

// Check evaluates a session state against a requirement.
func Check(st session.State, req Requirement) Decision {
	if st.Loading {
		return Loading
	}
	if !st.IsAuthenticated() {
		return RedirectLogin
	}
	isUser := st.IsAuthenticated() && !st.IsAdmin() && !st.IsTeacher()
	switch {
	case req == RequireAdmin && !st.IsAdmin(),
		req == RequireTeacher && !st.IsTeacher(),
		req == RequireUser && !isUser:
		return Denied
	}
	return Allow
}

// HomePath is the dashboard a session belongs on.
func HomePath(st session.State) string {
	switch {
	case st.IsAdmin():
		return session.PathAdminDashboard
	case st.IsTeacher():
		return session.PathTeacherDashboard
	default:
		return session.PathUserDashboard
	}
}

// ForPath maps a screen path to its requirement. protected is false for
// public screens (home and the auth forms), which skip the guard.
func ForPath(path string) (req Requirement, protected bool) {
	switch {
	case path == session.PathHome, strings.HasPrefix(path, "/auth/"):
		return RequireNone, false
	case strings.HasPrefix(path, "/admin/"):
		return RequireAdmin, true
	case strings.HasPrefix(path, "/teacher/"):
		return RequireTeacher, true
	case strings.HasPrefix(path, "/user/"):
		return RequireUser, true
	}
	return RequireNone, true
}
