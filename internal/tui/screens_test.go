package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/domain"
)

// submitForm fills the form fields in order and submits with enter on the
// last one, returning the screen and the submit command.
func submitForm(t *testing.T, s screen, values ...string) (screen, tea.Cmd) {
	t.Helper()
	for i, v := range values {
		s = typeText(s, v)
		if i < len(values)-1 {
			s, _ = s.Update(keyMsg("tab"))
		}
	}
	s, cmd := s.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("form did not submit")
	}
	return s, cmd
}

func TestLoginScreen_BadCredentials(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, nil)
	s, run := submitForm(t, newLoginModel(h.env), "sam@campus.edu", "wrongpw")
	if !s.(loginModel).busy {
		t.Error("login should be busy while the request runs")
	}

	s, _ = s.Update(run())
	m := s.(loginModel)
	if m.err != session.MsgInvalidCredentials {
		t.Errorf("err = %q, want %q", m.err, session.MsgInvalidCredentials)
	}
	if m.form.value(1) != "" {
		t.Error("password should be cleared after a failed login")
	}
	if h.env.session.IsAuthenticated() {
		t.Error("failed login authenticated the session")
	}
}

func TestLoginScreen_Success(t *testing.T) {
	h := newHarness(t, &fakeBackend{loginUser: adminUser}, nil)
	s, run := submitForm(t, newLoginModel(h.env), "admin@campus.edu", "secret1")
	s, _ = s.Update(run())

	if m := s.(loginModel); m.err != "" || m.busy {
		t.Errorf("after success: err=%q busy=%v", m.err, m.busy)
	}
	if !h.env.session.IsAdmin() {
		t.Error("session should be an admin session")
	}
	if got := h.navigated(t); got != session.PathAdminDashboard {
		t.Errorf("navigated to %q, want admin dashboard", got)
	}
}

func TestLoginScreen_RequiresFields(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, nil)
	s := newLoginModel(h.env)
	s, _ = s.Update(keyMsg("enter"))
	s, cmd := s.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("empty form should not submit")
	}
	if s.(loginModel).err == "" {
		t.Error("expected a validation message")
	}
}

func TestRegisterScreen_TeacherPending(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, nil)
	s := newRegisterModel(h.env)
	for _, v := range []string{"tess@campus.edu", "Tess", "Smith", "secret1", "secret1"} {
		s = typeText(s, v)
		s, _ = s.Update(keyMsg("tab"))
	}
	s, _ = s.Update(keyMsg("right")) // Student -> Teacher
	s, cmd := s.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("register did not submit")
	}
	s, _ = s.Update(cmd())

	m := s.(registerModel)
	if !m.pending {
		t.Fatalf("expected pending approval state, err=%q", m.err)
	}
	if !strings.Contains(m.View(), session.MsgTeacherPending) {
		t.Error("pending view should explain the approval wait")
	}
	if h.env.session.IsAuthenticated() {
		t.Error("teacher registration must not log in")
	}
	if _, cmd := m.Update(keyMsg("enter")); pathOf(t, cmd) != session.PathLogin {
		t.Error("enter should go to sign in")
	}
}

func TestRegisterScreen_ValidationMessage(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, nil)
	s, run := submitForm(t, newRegisterModel(h.env), "sam@campus.edu", "Sam", "Lee", "secret1", "secret2", "")
	s, _ = s.Update(run())
	if got := s.(registerModel).err; got != "Passwords do not match" {
		t.Errorf("err = %q", got)
	}
	for _, r := range h.backend.seen() {
		if strings.Contains(r, "registerNewUser") {
			t.Error("invalid form reached the server")
		}
	}
}

func TestForgotScreen(t *testing.T) {
	h := newHarness(t, &fakeBackend{}, nil)
	s, run := submitForm(t, newForgotModel(h.env), "not-an-email")
	s, _ = s.Update(run())
	if got := s.(passwordModel).err; got != "Please enter a valid email address" {
		t.Errorf("err = %q", got)
	}
}

func seedNotifications() []domain.Notification {
	return []domain.Notification{
		{ID: 1, Type: domain.NotifGradeReleased, Title: "Grade released", Message: "You got 18/20"},
		{ID: 2, Type: domain.NotifNewMessage, Title: "New message", Read: true},
		{ID: 3, Type: domain.NotifAssignmentPublished, Title: "Lab 3 published"},
	}
}

// loadedNotifications returns a notifications screen over an active feed.
func loadedNotifications(t *testing.T, b *fakeBackend) (screen, *harness) {
	t.Helper()
	h := newHarness(t, b, studentUser)
	h.env.feed.Start(context.Background())

	// Wait for the first poll so no fetch is in flight during the test.
	deadline := time.After(2 * time.Second)
	for len(h.env.feed.Snapshot().Items) != 3 {
		select {
		case <-h.env.feed.Changes():
		case <-deadline:
			t.Fatalf("feed never loaded, calls = %v", b.seen())
		}
	}
	return newNotificationsModel(h.env), h
}

func TestNotificationsScreen_MarkRead(t *testing.T) {
	s, h := loadedNotifications(t, &fakeBackend{notifications: seedNotifications()})
	if got := s.(notificationsModel).snap.UnreadCount; got != 2 {
		t.Fatalf("unread = %d, want 2", got)
	}

	s, cmd := s.Update(keyMsg("m"))
	if cmd == nil {
		t.Fatal("m on an unread item should mark it read")
	}
	s, _ = s.Update(cmd())

	m := s.(notificationsModel)
	if m.snap.UnreadCount != 1 || !m.snap.Items[0].Read {
		t.Errorf("after mark read: unread=%d first.read=%v", m.snap.UnreadCount, m.snap.Items[0].Read)
	}
	if !h.backend.saw("PUT /api/notifications/1/read") {
		t.Errorf("server calls = %v", h.backend.seen())
	}
}

func TestNotificationsScreen_DeleteNeedsConfirm(t *testing.T) {
	s, h := loadedNotifications(t, &fakeBackend{notifications: seedNotifications()})

	s, cmd := s.Update(keyMsg("x"))
	if cmd != nil || !s.(notificationsModel).confirm {
		t.Fatal("x should ask for confirmation first")
	}
	s, _ = s.Update(keyMsg("n"))
	if s.(notificationsModel).confirm || len(s.(notificationsModel).snap.Items) != 3 {
		t.Fatal("n should cancel the delete")
	}

	s, _ = s.Update(keyMsg("x"))
	s, cmd = s.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("y should delete")
	}
	s, _ = s.Update(cmd())

	m := s.(notificationsModel)
	if len(m.snap.Items) != 2 || m.snap.UnreadCount != 1 {
		t.Errorf("after delete: items=%d unread=%d", len(m.snap.Items), m.snap.UnreadCount)
	}
	if !h.backend.saw("DELETE /api/notifications/1") {
		t.Errorf("server calls = %v", h.backend.seen())
	}
}

func TestNotificationsScreen_FailureLeavesState(t *testing.T) {
	b := &fakeBackend{notifications: seedNotifications()}
	s, _ := loadedNotifications(t, b)
	b.mu.Lock()
	b.failWrites = true
	b.mu.Unlock()

	s, cmd := s.Update(keyMsg("a"))
	s, _ = s.Update(cmd())

	m := s.(notificationsModel)
	if m.snap.UnreadCount != 2 {
		t.Errorf("unread = %d after failed mark-all, want 2", m.snap.UnreadCount)
	}
	if !strings.Contains(m.err, "mark all as read failed") {
		t.Errorf("err = %q", m.err)
	}
}

func TestAdminScreen_SuspendFlow(t *testing.T) {
	b := &fakeBackend{
		users:   []domain.User{*adminUser, *studentUser},
		pending: []domain.User{{Email: "new@campus.edu", Suspended: true, Roles: []domain.Role{{RoleName: domain.RoleTeacher}}}},
	}
	h := newHarness(t, b, adminUser)
	s := newAdminModel(h.env)
	s, _ = s.Update(s.Init()())

	m := s.(adminModel)
	if len(m.users) != 2 || len(m.pending) != 1 || m.err != "" {
		t.Fatalf("loaded users=%d pending=%d err=%q", len(m.users), len(m.pending), m.err)
	}

	s, _ = s.Update(keyMsg("s")) // admin row: not suspendable
	if s.(adminModel).confirm != nil {
		t.Fatal("admins should not be suspendable")
	}

	s, _ = s.Update(keyMsg("j"))
	s, _ = s.Update(keyMsg("s"))
	if c := s.(adminModel).confirm; c == nil || c.email != studentUser.Email {
		t.Fatalf("confirm = %+v", c)
	}
	s, cmd := s.Update(keyMsg("y"))
	s, reload := s.Update(cmd())
	if reload == nil {
		t.Error("a successful action should reload the lists")
	}
	if got := s.(adminModel).status; got != "Suspended "+studentUser.Email {
		t.Errorf("status = %q", got)
	}
	if !b.saw("PUT /" + studentUser.Email + "/suspend") {
		t.Errorf("server calls = %v", b.seen())
	}

	s, _ = s.Update(keyMsg("tab"))
	s, _ = s.Update(keyMsg("a"))
	s, cmd = s.Update(keyMsg("y"))
	s.Update(cmd())
	if !b.saw("PUT /new@campus.edu/unsuspend") {
		t.Errorf("approve should unsuspend, calls = %v", b.seen())
	}
}

func TestSubmissionsScreen_CopyLink(t *testing.T) {
	b := &fakeBackend{submissions: []domain.Submission{{ID: 9, Version: 2, FileName: "lab.pdf", Assignment: &domain.Assignment{Title: "Lab"}}}}
	h := newHarness(t, b, studentUser)

	var copied, opened string
	origCopy, origOpen := copyToClipboard, openURL
	copyToClipboard = func(s string) error { copied = s; return nil }
	openURL = func(s string) error { opened = s; return errors.New("no browser") }
	defer func() { copyToClipboard, openURL = origCopy, origOpen }()

	s := newSubmissionsModel(h.env)
	s, _ = s.Update(s.Init()())
	if !strings.Contains(s.View(), "lab.pdf") {
		t.Fatalf("view missing submission:\n%s", s.View())
	}

	s, cmd := s.Update(keyMsg("c"))
	s, _ = s.Update(cmd())
	if copied != "https://files.campus.edu/sub.pdf?sig=abc" {
		t.Errorf("copied = %q", copied)
	}
	if got := s.(submissionsModel).status; !strings.Contains(got, "copied") {
		t.Errorf("status = %q", got)
	}

	s, cmd = s.Update(keyMsg("o"))
	s, _ = s.Update(cmd())
	if opened == "" {
		t.Error("o should open the link")
	}
	if got := s.(submissionsModel).err; !strings.Contains(got, "no browser") {
		t.Errorf("err = %q", got)
	}
	if !b.saw("GET /api/submissions/9/download") {
		t.Errorf("server calls = %v", b.seen())
	}
}
