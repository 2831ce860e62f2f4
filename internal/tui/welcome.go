package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/session"
)

// welcomeModel is the public landing screen. Authenticated sessions are
// sent straight on to their dashboard.
type welcomeModel struct {
	env   *env
	state session.State
}

func newWelcomeModel(e *env) screen {
	return welcomeModel{env: e, state: session.State{Loading: true}}
}

func (m welcomeModel) Init() tea.Cmd {
	st := m.env.session.State()
	return func() tea.Msg { return sessionChangedMsg{state: st} }
}

func (m welcomeModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.state = msg.state
		if !m.state.Loading && m.state.IsAuthenticated() {
			return m, navigate(m.env.session.HomeRedirect())
		}
	case tea.KeyMsg:
		if m.state.Loading || m.state.IsAuthenticated() {
			return m, nil
		}
		switch msg.String() {
		case "l", "enter":
			return m, navigate(session.PathLogin)
		case "r":
			return m, navigate(pathRegister)
		case "f":
			return m, navigate(pathForgot)
		}
	}
	return m, nil
}

func (m welcomeModel) View() string {
	if m.state.Loading || m.state.IsAuthenticated() {
		return "\n  " + dimStyle.Render("Loading...")
	}
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Welcome to CampusMaster") + "\n")
	b.WriteString("  " + metaStyle.Render("Campus Management System") + "\n\n")
	b.WriteString("  " + normalStyle.Render("Separate dashboards for students, teachers and administrators.") + "\n")
	b.WriteString("  " + normalStyle.Render("Notifications, assignments and grades in one place.") + "\n\n")
	b.WriteString("  " + helpEntry("l", "sign in") + "   " + helpEntry("r", "create account") + "   " + helpEntry("f", "forgot password") + "\n")
	return b.String()
}

func (m welcomeModel) helpKeys() string {
	return helpBar("l", "sign in", "r", "register", "h", "help", "q", "quit")
}

func (m welcomeModel) editing() bool { return false }
