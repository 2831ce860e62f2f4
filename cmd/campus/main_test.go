package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusmaster/campus/internal/config"
	"github.com/campusmaster/campus/internal/store"
	"github.com/campusmaster/campus/pkg/domain"
)

var ada = domain.User{
	Email:     "ada@campus.edu",
	FirstName: "Ada",
	LastName:  "Admin",
	Roles:     []domain.Role{{RoleName: domain.RoleAdmin}},
}

var discard = log.New(io.Discard, "", 0)

// fakeAPI answers the handful of endpoints the subcommands call.
func fakeAPI(t *testing.T, token string) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v) //nolint:errcheck
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authenticate" {
			var req struct {
				Email    string `json:"userEmail"`
				Password string `json:"userPassword"`
			}
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			if req.Password != "s3cret" {
				http.Error(w, "Bad credentials", http.StatusUnauthorized)
				return
			}
			reply(w, domain.LoginResponse{User: ada, JWTToken: token})
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/getUserInfo":
			reply(w, ada)
		case "/api/notifications":
			reply(w, []domain.Notification{
				{ID: 1, Type: domain.NotifGradeReleased, Title: "Grade released"},
				{ID: 2, Type: domain.NotifNewMessage, Title: "New message", Read: true},
			})
		case "/api/notifications/unread/count":
			reply(w, domain.UnreadCount{Count: 1})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiURL string) config.Config {
	t.Helper()
	return config.Config{
		APIURL:       apiURL,
		StatePath:    filepath.Join(t.TempDir(), "state.db"),
		PollInterval: time.Hour,
		HTTPTimeout:  5 * time.Second,
	}
}

// seed writes a session into the store file and closes it again.
func seed(t *testing.T, cfg config.Config, token string, u *domain.User) {
	t.Helper()
	st, err := store.Open(cfg.StatePath, nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close() //nolint:errcheck
	st.SetToken(token)
	st.SetUser(u)
}

func savedToken(t *testing.T, cfg config.Config) string {
	t.Helper()
	st, err := store.Open(cfg.StatePath, nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close() //nolint:errcheck
	return st.GetToken()
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   ada.Email,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestRunVersionAndHelp(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, "campus dev"},
		{[]string{"--version"}, "campus dev"},
		{[]string{"help"}, "campus login"},
		{[]string{"-h"}, "CAMPUS_API_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, strings.NewReader(""), &out); err != nil {
				t.Fatalf("run(%v) error: %v", tt.args, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("run(%v) output missing %q:\n%s", tt.args, tt.want, out.String())
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("CAMPUS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CAMPUS_STATE_PATH", filepath.Join(t.TempDir(), "state.db"))
	t.Setenv("CAMPUS_LOG_FILE", "")
	t.Setenv("DEBUG", "")

	var out bytes.Buffer
	err := run([]string{"frobnicate"}, strings.NewReader(""), &out)
	if err == nil || !strings.Contains(err.Error(), "frobnicate") {
		t.Fatalf("run() error = %v, want unknown command", err)
	}
	if !strings.Contains(out.String(), "Commands:") {
		t.Error("unknown command should print help")
	}
}

func TestRunLogin(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := fakeAPI(t, token)

	tests := []struct {
		name      string
		email     string
		password  string
		wantErr   string
		wantOut   string
		wantSaved bool
	}{
		{name: "success", email: "ada@campus.edu\n", password: "s3cret", wantOut: "Signed in as Ada Admin (Admin)", wantSaved: true},
		{name: "email without newline", email: "ada@campus.edu", password: "s3cret", wantOut: "Signed in as", wantSaved: true},
		{name: "bad credentials", email: "ada@campus.edu\n", password: "nope", wantErr: "Invalid email or password"},
		{name: "no email", email: "\n", password: "s3cret", wantErr: "email is required"},
		{name: "no password", email: "ada@campus.edu\n", password: "", wantErr: "password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, srv.URL)
			orig := readPasswordFunc
			readPasswordFunc = func(fd int) ([]byte, error) {
				return []byte(tt.password), nil
			}
			t.Cleanup(func() { readPasswordFunc = orig })

			var out bytes.Buffer
			err := runLogin(context.Background(), cfg, discard, strings.NewReader(tt.email), &out)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("runLogin() error = %v, want %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("runLogin() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out.String())
			}
			if saved := savedToken(t, cfg) == token; saved != tt.wantSaved {
				t.Errorf("token saved = %v, want %v", saved, tt.wantSaved)
			}
		})
	}
}

func TestRunLoginPasswordError(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:0")
	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) {
		return nil, errors.New("not a terminal")
	}
	t.Cleanup(func() { readPasswordFunc = orig })

	err := runLogin(context.Background(), cfg, discard, strings.NewReader("a@b.c\n"), io.Discard)
	if err == nil || !strings.Contains(err.Error(), "not a terminal") {
		t.Fatalf("runLogin() error = %v", err)
	}
}

func TestRunLogout(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:0")

	var out bytes.Buffer
	if err := runLogout(cfg, discard, &out); err != nil {
		t.Fatalf("runLogout() error: %v", err)
	}
	if !strings.Contains(out.String(), "Already logged out.") {
		t.Errorf("output = %q", out.String())
	}

	seed(t, cfg, "tok", &ada)
	out.Reset()
	if err := runLogout(cfg, discard, &out); err != nil {
		t.Fatalf("runLogout() error: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out.") {
		t.Errorf("output = %q", out.String())
	}
	if tok := savedToken(t, cfg); tok != "" {
		t.Errorf("token after logout = %q", tok)
	}
}

func TestRunWhoami(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := fakeAPI(t, token)

	t.Run("signed in", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		seed(t, cfg, token, &ada)
		var out bytes.Buffer
		if err := runWhoami(context.Background(), cfg, discard, &out); err != nil {
			t.Fatalf("runWhoami() error: %v", err)
		}
		for _, want := range []string{"Ada Admin", "ada@campus.edu", "Admin", "expires"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("stale token", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		seed(t, cfg, signedToken(t, time.Now().Add(-time.Hour)), &ada)
		err := runWhoami(context.Background(), cfg, discard, io.Discard)
		if err == nil || !strings.Contains(err.Error(), "session expired") {
			t.Fatalf("runWhoami() error = %v", err)
		}
	})

	t.Run("signed out", func(t *testing.T) {
		cfg := testConfig(t, srv.URL)
		if err := runWhoami(context.Background(), cfg, discard, io.Discard); !errors.Is(err, errNotSignedIn) {
			t.Fatalf("runWhoami() error = %v, want errNotSignedIn", err)
		}
	})
}

func TestRunNotifications(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := fakeAPI(t, token)
	cfg := testConfig(t, srv.URL)

	if err := runNotifications(context.Background(), cfg, discard, io.Discard); !errors.Is(err, errNotSignedIn) {
		t.Fatalf("runNotifications() signed out error = %v", err)
	}

	seed(t, cfg, token, &ada)
	var out bytes.Buffer
	if err := runNotifications(context.Background(), cfg, discard, &out); err != nil {
		t.Fatalf("runNotifications() error: %v", err)
	}
	for _, want := range []string{"2 notifications, 1 unread", "• grade", "Grade released", "message", "New message"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRoleNames(t *testing.T) {
	tests := []struct {
		user *domain.User
		want string
	}{
		{nil, "User"},
		{&domain.User{}, "User"},
		{&ada, "Admin"},
		{&domain.User{Roles: []domain.Role{{RoleName: "Teacher"}, {RoleName: "User"}}}, "Teacher, User"},
	}
	for _, tt := range tests {
		if got := roleNames(tt.user); got != tt.want {
			t.Errorf("roleNames(%v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
