package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/guard"
	"github.com/campusmaster/campus/internal/session"
)

// deniedModel is shown in place of a page the session lacks the role for.
type deniedModel struct {
	env  *env
	home string
}

func newDeniedModel(e *env, st session.State) deniedModel {
	return deniedModel{env: e, home: guard.HomePath(st)}
}

func (m deniedModel) Update(msg tea.Msg) (deniedModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			return m, navigate(m.home)
		case "l":
			return m, logoutCmd(m.env.session)
		}
	}
	return m, nil
}

func (m deniedModel) View() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Access Denied"))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render("You do not have permission to access this page."))
	b.WriteString("\n")
	b.WriteString(normalStyle.Render("Please return to your dashboard."))
	b.WriteString("\n\n")
	b.WriteString(helpEntry("enter", "go to my dashboard") + "  " + helpEntry("l", "log out"))
	return "\n" + deniedBoxStyle.Render(b.String())
}

func (m deniedModel) helpKeys() string {
	return helpBar("enter", "dashboard", "l", "logout", "q", "quit")
}

// logoutCmd logs out off the event loop. The session's navigator
// delivers the move to the home screen.
func logoutCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		s.Logout()
		return nil
	}
}
