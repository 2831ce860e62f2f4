package tui

import (
	"strings"
	"testing"

	"github.com/campusmaster/campus/pkg/domain"
)

func TestCategoryStyleKnownCategory(t *testing.T) {
	for _, c := range []string{"assignment", "grade", "submission", "course", "teacher", "message", "system"} {
		t.Run(c, func(t *testing.T) {
			rendered := CategoryStyle(c).Render(c)
			if !strings.Contains(rendered, c) {
				t.Errorf("CategoryStyle(%q).Render(%q) = %q, want to contain %q", c, c, rendered, c)
			}
		})
	}
}

func TestCategoryStyleUnknownFallback(t *testing.T) {
	rendered := CategoryStyle("nonexistent").Render("nonexistent")
	if !strings.Contains(rendered, "nonexistent") {
		t.Errorf("CategoryStyle fallback did not render text: %q", rendered)
	}
}

func TestRoleBadge(t *testing.T) {
	tests := []struct {
		roles []string
		want  string
	}{
		{[]string{domain.RoleAdmin}, "[Admin]"},
		{[]string{domain.RoleTeacher}, "[Teacher]"},
		{nil, "[User]"},
		{[]string{domain.RoleAdmin, domain.RoleTeacher}, "[Admin]"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			u := &domain.User{}
			for _, r := range tc.roles {
				u.Roles = append(u.Roles, domain.Role{RoleName: r})
			}
			if got := RoleBadge(u); !strings.Contains(got, tc.want) {
				t.Errorf("RoleBadge() = %q, want to contain %q", got, tc.want)
			}
		})
	}
	if RoleBadge(nil) != "" {
		t.Error("RoleBadge(nil) should be empty")
	}
}

func TestUnreadBadge(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{3, " 3 "},
		{150, "99+"},
	}
	for _, tc := range tests {
		got := unreadBadge(tc.n)
		if tc.want == "" {
			if got != "" {
				t.Errorf("unreadBadge(%d) = %q, want empty", tc.n, got)
			}
			continue
		}
		if !strings.Contains(got, tc.want) {
			t.Errorf("unreadBadge(%d) = %q, want to contain %q", tc.n, got, tc.want)
		}
	}
}

func TestHelpEntryFormat(t *testing.T) {
	result := helpEntry("q", "quit")
	if !strings.Contains(result, "q") {
		t.Errorf("helpEntry('q','quit') does not contain key 'q': %q", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("helpEntry('q','quit') does not contain label 'quit': %q", result)
	}
}

func TestHelpBarPairs(t *testing.T) {
	bar := helpBar("j/k", "nav", "enter", "open", "dangling")
	for _, want := range []string{"j/k", "nav", "enter", "open"} {
		if !strings.Contains(bar, want) {
			t.Errorf("helpBar missing %q: %q", want, bar)
		}
	}
	if strings.Contains(bar, "dangling") {
		t.Errorf("helpBar rendered an unpaired key: %q", bar)
	}
}

func TestHelpViewMarksCursor(t *testing.T) {
	items := helpItems("https://api.example")
	view := helpView(items, 0)
	if !strings.Contains(view, "> ") || !strings.Contains(view, "https://api.example") {
		t.Errorf("helpView missing cursor or link:\n%s", view)
	}
	if !strings.Contains(view, "campus notifications") {
		t.Errorf("helpView missing commands:\n%s", view)
	}
}
