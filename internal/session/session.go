// Package session owns the authenticated session: the bearer token, the
// cached user profile and the transitions between anonymous and
// authenticated states.
package session

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/campusmaster/campus/pkg/client"
	"github.com/campusmaster/campus/pkg/domain"
)

// Landing paths.
const (
	PathHome             = "/"
	PathLogin            = "/auth/login"
	PathAdminDashboard   = "/admin/dashboard"
	PathTeacherDashboard = "/teacher/dashboard"
	PathUserDashboard    = "/user/dashboard"
)

// User-facing failure messages.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgTeacherPending     = "Your teacher account is pending approval. Please wait for an admin to approve your registration."
	MsgSuspended          = "Your account has been suspended. Please contact an administrator."
	MsgEmailExists        = "Email already exists"
	MsgRegisterFailed     = "Registration failed. Please try again."
	MsgUpdateFailed       = "Failed to update profile. Please try again."
	MsgForgotFailed       = "Failed to send reset email. Please try again."
	MsgResetFailed        = "Failed to reset password. The link may be invalid or expired."
)

var (
	// ErrTeacherPendingApproval is returned by Register for teacher sign-ups,
	// which stay suspended until an admin approves them.
	ErrTeacherPendingApproval = errors.New("teacher account pending approval")
	// ErrSuspended is wrapped by Login when the account is suspended.
	ErrSuspended = errors.New("account suspended")
	// ErrValidation is wrapped by input checks that fail before any request.
	ErrValidation = errors.New("invalid input")
)

// Error is a failure with a message fit for display. It wraps the cause so
// errors.Is and client.IsStatus still see through it.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Phase is the coarse session state.
type Phase int

const (
	Unresolved Phase = iota
	Anonymous
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unresolved"
	}
}

// State is an immutable snapshot of the session.
type State struct {
	Token   string
	User    *domain.User
	Loading bool
}

// Phase derives the coarse state.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return Unresolved
	case s.IsAuthenticated():
		return Authenticated
	default:
		return Anonymous
	}
}

// IsAuthenticated reports whether both a token and a user are present.
func (s State) IsAuthenticated() bool { return s.Token != "" && s.User != nil }

// IsAdmin reports whether the user carries the Admin role.
func (s State) IsAdmin() bool { return s.User.IsAdmin() }

// IsTeacher reports whether the user carries the Teacher role.
func (s State) IsTeacher() bool { return s.User.IsTeacher() }

// IsUser reports whether the session is authenticated as neither Admin nor Teacher.
func (s State) IsUser() bool { return s.IsAuthenticated() && !s.IsAdmin() && !s.IsTeacher() }

// AuthAPI is the subset of the API client the session needs.
type AuthAPI interface {
	Authenticate(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	RegisterNewUser(ctx context.Context, req client.RegisterRequest) (*domain.User, error)
	UpdateUserInfo(ctx context.Context, req client.UpdateUserRequest) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// Store persists the token and user between runs.
type Store interface {
	GetToken() string
	SetToken(token string)
	GetUser() *domain.User
	SetUser(u *domain.User)
	ClearAll()
}

// Navigator moves the UI to a path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is the process-wide authentication state. Construct one with New
// and call Resolve once before making authorization decisions.
type Session struct {
	api    AuthAPI
	store  Store
	nav    Navigator
	logger *log.Logger

	// notifyMu serializes state changes together with their delivery, so
	// subscribers see transitions in the order they happened.
	notifyMu sync.Mutex

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// New creates an unresolved session. A nil Navigator discards navigation.
func New(api AuthAPI, st Store, nav Navigator, opts ...Option) *Session {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	s := &Session{
		api:    api,
		store:  st,
		nav:    nav,
		logger: log.New(io.Discard, "", 0),
		state:  State{Loading: true},
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether the session holds a token and a user.
func (s *Session) IsAuthenticated() bool { return s.State().IsAuthenticated() }

// IsAdmin reports whether the session user is an Admin.
func (s *Session) IsAdmin() bool { return s.State().IsAdmin() }

// IsTeacher reports whether the session user is a Teacher.
func (s *Session) IsTeacher() bool { return s.State().IsTeacher() }

// IsUser reports whether the session user is neither Admin nor Teacher.
func (s *Session) IsUser() bool { return s.State().IsUser() }

// Subscribe registers fn to be called with every new state. fn is called
// immediately with the current state. The returned func unsubscribes.
// fn runs while transitions are held back and must not change the session.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	cur := s.state
	s.mu.Unlock()

	fn(cur)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Resolve reads the store and leaves the Unresolved phase. Only the first
// call has an effect.
func (s *Session) Resolve() State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if !s.state.Loading {
		cur := s.state
		s.mu.Unlock()
		return cur
	}
	next := State{}
	if token, user := s.store.GetToken(), s.store.GetUser(); token != "" && user != nil {
		next = State{Token: token, User: user}
	}
	s.state = next
	subs := s.subscribers()
	s.mu.Unlock()

	s.logger.Printf("session: resolved %s", next.Phase())
	notify(subs, next)
	return next
}

// Login authenticates and, on success, persists the session and navigates
// to the landing page for the user's role. On failure the state is unchanged.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Authenticate(ctx, email, password)
	if err != nil {
		return loginError(err)
	}
	u := resp.User
	if u.Suspended {
		if u.IsTeacher() {
			return &Error{Message: MsgTeacherPending, Err: ErrSuspended}
		}
		return &Error{Message: MsgSuspended, Err: ErrSuspended}
	}

	s.update(func(State) State {
		s.store.SetToken(resp.JWTToken)
		s.store.SetUser(&u)
		return State{Token: resp.JWTToken, User: &u}
	})
	s.logger.Printf("session: logged in %s", u.Email)

	s.nav.Navigate(landing(&u))
	return nil
}

// Landing returns the post-login path for the current user.
func (s *Session) Landing() string {
	return landing(s.State().User)
}

// HomeRedirect is where the home screen sends an authenticated user. Only
// Admin is special-cased there; teachers reach their dashboard from the
// Access Denied link.
func (s *Session) HomeRedirect() string {
	if s.IsAdmin() {
		return PathAdminDashboard
	}
	return PathUserDashboard
}

func landing(u *domain.User) string {
	switch {
	case u.IsAdmin():
		return PathAdminDashboard
	case u.IsTeacher():
		return PathTeacherDashboard
	default:
		return PathUserDashboard
	}
}

func loginError(err error) error {
	switch code := client.StatusOf(err); {
	case code == http.StatusUnauthorized:
		return &Error{Message: MsgInvalidCredentials, Err: err}
	case code != 0:
		return &Error{Message: MsgLoginFailed, Err: err}
	}
	return err
}

// Register validates the input, creates the account and logs in with the
// same credentials. Teacher sign-ups return ErrTeacherPendingApproval and
// stay logged out.
func (s *Session) Register(ctx context.Context, r Registration) error {
	if err := validateInput(r); err != nil {
		return err
	}
	_, err := s.api.RegisterNewUser(ctx, client.RegisterRequest{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
		Role:      r.Role,
	})
	if err != nil {
		switch code := client.StatusOf(err); {
		case code == http.StatusBadRequest:
			return &Error{Message: MsgEmailExists, Err: err}
		case code != 0:
			return &Error{Message: MsgRegisterFailed, Err: err}
		}
		return err
	}
	if r.Role == domain.RoleTeacher {
		s.logger.Printf("session: registered teacher %s, awaiting approval", r.Email)
		return ErrTeacherPendingApproval
	}
	return s.Login(ctx, r.Email, r.Password)
}

// UpdateUser sends a profile update and replaces the persisted and
// in-memory user with the server's copy.
func (s *Session) UpdateUser(ctx context.Context, req client.UpdateUserRequest) error {
	u, err := s.api.UpdateUserInfo(ctx, req)
	if err != nil {
		if client.StatusOf(err) != 0 {
			return &Error{Message: MsgUpdateFailed, Err: err}
		}
		return err
	}
	if u == nil {
		return &Error{Message: MsgUpdateFailed, Err: errors.New("empty profile in response")}
	}

	s.update(func(st State) State {
		// A logout that won the race keeps the session empty.
		if st.Token == "" {
			return st
		}
		s.store.SetUser(u)
		st.User = u
		return st
	})
	return nil
}

// Logout clears the store and the in-memory state, then navigates home.
func (s *Session) Logout() {
	s.update(func(State) State {
		s.store.ClearAll()
		return State{}
	})
	s.logger.Printf("session: logged out")
	s.nav.Navigate(PathHome)
}

// ForgotPassword asks the backend to email a reset link.
func (s *Session) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return "", &Error{Message: "Please enter a valid email address", Err: ErrValidation}
	}
	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", &Error{Message: MsgForgotFailed, Err: err}
	}
	return msg, nil
}

// ResetPassword validates the new password and applies it with a reset token.
func (s *Session) ResetPassword(ctx context.Context, r PasswordReset) (string, error) {
	if err := validateInput(r); err != nil {
		return "", err
	}
	msg, err := s.api.ResetPassword(ctx, r.Token, r.Password)
	if err != nil {
		return "", &Error{Message: MsgResetFailed, Err: err}
	}
	return msg, nil
}

// update applies fn, along with any store writes it makes, under mu and then
// notifies subscribers. notifyMu keeps the whole step ordered against other
// transitions.
func (s *Session) update(fn func(State) State) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = fn(s.state)
	next := s.state
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
}

// subscribers must be called with mu held.
func (s *Session) subscribers() []func(State) {
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}
