package domain

import "testing"

func rolesUser(names ...string) *User {
	u := &User{Email: "someone@campus.test"}
	for _, n := range names {
		u.Roles = append(u.Roles, Role{RoleName: n})
	}
	return u
}

func TestUserRoleDerivation(t *testing.T) {
	tests := []struct {
		name      string
		user      *User
		admin     bool
		teacher   bool
		plainUser bool
	}{
		{"admin", rolesUser(RoleAdmin), true, false, false},
		{"teacher", rolesUser(RoleTeacher), false, true, false},
		{"no roles", rolesUser(), false, false, true},
		{"explicit user", rolesUser(RoleUser), false, false, true},
		{"admin and teacher", rolesUser(RoleAdmin, RoleTeacher), true, true, false},
		{"nil user", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := tt.user.IsTeacher(); got != tt.teacher {
				t.Errorf("IsTeacher() = %v, want %v", got, tt.teacher)
			}
			if got := tt.user.IsPlainUser(); got != tt.plainUser {
				t.Errorf("IsPlainUser() = %v, want %v", got, tt.plainUser)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{Email: "a@b.c", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{Email: "a@b.c", FirstName: "Ada"}, "Ada"},
		{User{Email: "a@b.c"}, "a@b.c"},
	}
	for _, tt := range tests {
		if got := tt.user.FullName(); got != tt.want {
			t.Errorf("FullName() = %q, want %q", got, tt.want)
		}
	}
}
