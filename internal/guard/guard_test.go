package guard

import (
	"testing"

	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/domain"
)

func stateWith(roles ...string) session.State {
	u := &domain.User{Email: "x@y.z"}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role{RoleName: r})
	}
	return session.State{Token: "tok", User: u}
}

func TestCheck(t *testing.T) {
	admin := stateWith(domain.RoleAdmin)
	teacher := stateWith(domain.RoleTeacher)
	student := stateWith()
	both := stateWith(domain.RoleAdmin, domain.RoleTeacher)

	tests := []struct {
		name string
		st   session.State
		req  Requirement
		want Decision
	}{
		{"unresolved", session.State{Loading: true}, RequireAdmin, Loading},
		{"unresolved even with data", session.State{Loading: true, Token: "t", User: &domain.User{}}, RequireNone, Loading},
		{"anonymous", session.State{}, RequireNone, RedirectLogin},
		{"token without user", session.State{Token: "t"}, RequireNone, RedirectLogin},
		{"admin on admin", admin, RequireAdmin, Allow},
		{"teacher on admin", teacher, RequireAdmin, Denied},
		{"student on admin", student, RequireAdmin, Denied},
		{"teacher on teacher", teacher, RequireTeacher, Allow},
		{"admin on teacher", admin, RequireTeacher, Denied},
		{"student on user", student, RequireUser, Allow},
		{"teacher on user", teacher, RequireUser, Denied},
		{"admin on user", admin, RequireUser, Denied},
		{"admin+teacher on teacher", both, RequireTeacher, Allow},
		{"any role on none", teacher, RequireNone, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.st, tt.req); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHomePath(t *testing.T) {
	tests := []struct {
		st   session.State
		want string
	}{
		{stateWith(domain.RoleAdmin), session.PathAdminDashboard},
		{stateWith(domain.RoleTeacher), session.PathTeacherDashboard},
		{stateWith(), session.PathUserDashboard},
	}
	for _, tt := range tests {
		if got := HomePath(tt.st); got != tt.want {
			t.Errorf("HomePath() = %q, want %q", got, tt.want)
		}
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path      string
		req       Requirement
		protected bool
	}{
		{"/", RequireNone, false},
		{"/auth/login", RequireNone, false},
		{"/admin/dashboard", RequireAdmin, true},
		{"/teacher/dashboard", RequireTeacher, true},
		{"/user/dashboard", RequireUser, true},
		{"/notifications", RequireNone, true},
	}
	for _, tt := range tests {
		req, protected := ForPath(tt.path)
		if req != tt.req || protected != tt.protected {
			t.Errorf("ForPath(%q) = %v, %v; want %v, %v", tt.path, req, protected, tt.req, tt.protected)
		}
	}
}
