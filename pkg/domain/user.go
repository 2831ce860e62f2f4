package domain

// Role names as issued by the API.
const (
	RoleAdmin   = "Admin"
	RoleTeacher = "Teacher"
	RoleUser    = "User"
)

// Role is a named permission tag attached to a user.
type Role struct {
	RoleName        string `json:"roleName"`
	RoleDescription string `json:"roleDescription,omitempty"`
}

// User is a CampusMaster account profile. Email is the identity.
type User struct {
	Email      string `json:"userEmail"`
	FirstName  string `json:"userFirstName"`
	LastName   string `json:"userLastName"`
	Suspended  bool   `json:"isSuspended"`
	ResetToken string `json:"resetToken,omitempty"`
	Roles      []Role `json:"role"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.RoleName == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the Admin role.
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// IsTeacher reports whether the user carries the Teacher role.
func (u *User) IsTeacher() bool { return u.HasRole(RoleTeacher) }

// IsPlainUser reports whether the user is neither Admin nor Teacher.
// The plain "User" role is implied by the absence of the other two.
func (u *User) IsPlainUser() bool {
	return u != nil && !u.IsAdmin() && !u.IsTeacher()
}

// FullName joins first and last name, falling back to the email.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}

// LoginResponse is the payload returned by /authenticate.
type LoginResponse struct {
	User     User   `json:"user"`
	JWTToken string `json:"jwtToken"`
}
