package tui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/notify"
	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/client"
)

// Screen paths beyond the dashboards the session package lands on.
const (
	pathRegister      = "/auth/register"
	pathForgot        = "/auth/forgot-password"
	pathReset         = "/auth/reset-password"
	pathNotifications = "/notifications"
	pathSubmissions   = "/user/submissions"
)

// screen is one addressable page of the app.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	// helpKeys is the screen's part of the bottom help bar.
	helpKeys() string
	// editing reports whether keys are going to a text field, which
	// suspends the global single-letter shortcuts.
	editing() bool
}

// env is what screens share: the API, the session and the feed.
type env struct {
	client  *client.Client
	session *session.Session
	feed    *notify.Feed
	logger  *log.Logger
}

// routes maps a path to its screen constructor.
var routes = map[string]func(*env) screen{
	session.PathHome:             newWelcomeModel,
	session.PathLogin:            newLoginModel,
	pathRegister:                 newRegisterModel,
	pathForgot:                   newForgotModel,
	pathReset:                    newResetModel,
	session.PathAdminDashboard:   newAdminModel,
	session.PathTeacherDashboard: newTeacherModel,
	session.PathUserDashboard:    newStudentModel,
	pathSubmissions:              newSubmissionsModel,
	pathNotifications:            newNotificationsModel,
}

// navigateMsg switches the app to the screen at path. signal is set when
// the message came from the Navigator, whose watcher must be re-armed.
type navigateMsg struct {
	path   string
	signal bool
}

// navigate returns a command that switches screens.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// sessionChangedMsg tells screens the session state moved. signal is
// set when it came from the session watcher.
type sessionChangedMsg struct {
	state  session.State
	signal bool
}

// feedChangedMsg tells screens the notification feed changed.
type feedChangedMsg struct {
	snap notify.Snapshot
}

// Navigator carries navigation requests from outside the event loop
// (the session's Login and Logout) into the program. It never blocks:
// when the buffer is full the oldest request is dropped.
type Navigator struct {
	ch chan string
}

// NewNavigator creates a Navigator.
func NewNavigator() *Navigator {
	return &Navigator{ch: make(chan string, 4)}
}

// Navigate queues a path.
func (n *Navigator) Navigate(path string) {
	for {
		select {
		case n.ch <- path:
			return
		default:
		}
		select {
		case <-n.ch:
		default:
		}
	}
}

func waitForNav(n *Navigator) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: <-n.ch, signal: true}
	}
}

func waitForFeed(f *notify.Feed) tea.Cmd {
	return func() tea.Msg {
		<-f.Changes()
		return feedChangedMsg{snap: f.Snapshot()}
	}
}

func waitForSession(ch <-chan struct{}, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{state: s.State(), signal: true}
	}
}
