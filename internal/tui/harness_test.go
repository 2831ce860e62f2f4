package tui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/notify"
	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/internal/store"
	"github.com/campusmaster/campus/pkg/client"
	"github.com/campusmaster/campus/pkg/domain"
)

const testToken = "tok"

var (
	adminUser   = &domain.User{Email: "admin@campus.edu", FirstName: "Ada", Roles: []domain.Role{{RoleName: domain.RoleAdmin}}}
	teacherUser = &domain.User{Email: "tess@campus.edu", FirstName: "Tess", Roles: []domain.Role{{RoleName: domain.RoleTeacher}}}
	studentUser = &domain.User{Email: "sam@campus.edu", FirstName: "Sam", Roles: []domain.Role{{RoleName: domain.RoleUser}}}
)

// fakeBackend is a tiny in-memory CampusMaster API.
type fakeBackend struct {
	mu            sync.Mutex
	requests      []string // "METHOD /path"
	notifications []domain.Notification
	users         []domain.User
	pending       []domain.User
	submissions   []domain.Submission
	loginUser     *domain.User // nil rejects every login with 401
	failWrites    bool
}

func (b *fakeBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) saw(req string) bool {
	for _, r := range b.seen() {
		if r == req {
			return true
		}
	}
	return false
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	if b.failWrites && r.Method != http.MethodGet {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v) //nolint:errcheck
	}

	switch path := r.URL.Path; {
	case path == "/authenticate":
		if b.loginUser == nil {
			http.Error(w, "Bad credentials", http.StatusUnauthorized)
			return
		}
		reply(domain.LoginResponse{User: *b.loginUser, JWTToken: "fresh"})
	case path == "/registerNewUser":
		reply(domain.User{Email: "new@campus.edu"})
	case path == "/api/notifications" && r.Method == http.MethodGet:
		reply(b.notifications)
	case path == "/api/notifications/unread/count":
		reply(domain.UnreadCount{Count: domain.CountUnread(b.notifications)})
	case path == "/api/notifications/read-all":
		for i := range b.notifications {
			b.notifications[i].Read = true
		}
	case strings.HasPrefix(path, "/api/notifications/") && strings.HasSuffix(path, "/read"):
		for i := range b.notifications {
			if "/api/notifications/"+itoa(b.notifications[i].ID)+"/read" == path {
				b.notifications[i].Read = true
			}
		}
	case strings.HasPrefix(path, "/api/notifications/") && r.Method == http.MethodDelete:
		kept := b.notifications[:0]
		for _, n := range b.notifications {
			if "/api/notifications/"+itoa(n.ID) != path {
				kept = append(kept, n)
			}
		}
		b.notifications = kept
	case path == "/all-users":
		reply(b.users)
	case path == "/pending-teachers":
		reply(b.pending)
	case strings.HasSuffix(path, "/suspend"), strings.HasSuffix(path, "/unsuspend"):
		w.WriteHeader(http.StatusNoContent)
	case path == "/api/submissions/my-submissions":
		reply(b.submissions)
	case strings.HasPrefix(path, "/api/submissions/") && strings.HasSuffix(path, "/download"):
		reply(map[string]string{"url": "https://files.campus.edu/sub.pdf?sig=abc"})
	default:
		http.NotFound(w, r)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

type harness struct {
	backend *fakeBackend
	nav     *Navigator
	env     *env
}

// newHarness wires a real client, store, session and feed against the
// fake backend. A non-nil user starts the session authenticated.
func newHarness(t *testing.T, b *fakeBackend, user *domain.User) *harness {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"), nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	if user != nil {
		st.SetToken(testToken)
		st.SetUser(user)
	}

	c := client.New(srv.URL, st)
	nav := NewNavigator()
	s := session.New(c, st, nav)
	f := notify.New(c, notify.WithInterval(time.Hour))
	t.Cleanup(f.Stop)
	s.Resolve()

	return &harness{
		backend: b,
		nav:     nav,
		env: &env{
			client:  c,
			session: s,
			feed:    f,
			logger:  log.New(io.Discard, "", 0),
		},
	}
}

// navigated returns the next path the session pushed, or "" after a short wait.
func (h *harness) navigated(t *testing.T) string {
	t.Helper()
	select {
	case p := <-h.nav.ch:
		return p
	case <-time.After(time.Second):
		return ""
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends each rune of text as its own key press.
func typeText(s screen, text string) screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// pathOf runs cmd and returns the path if it produced a navigateMsg.
func pathOf(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		return ""
	}
	if msg, ok := cmd().(navigateMsg); ok {
		return msg.path
	}
	return ""
}
