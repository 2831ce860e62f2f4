package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/session"
)

// loginDoneMsg carries the outcome of a sign-in attempt. On success the
// session navigates by itself.
type loginDoneMsg struct {
	err error
}

type loginModel struct {
	env  *env
	form form
	busy bool
	err  string
}

func newLoginModel(e *env) screen {
	return loginModel{
		env: e,
		form: newForm(
			formField{label: "Email"},
			formField{label: "Password", secret: true},
		),
	}
}

func (m loginModel) Init() tea.Cmd { return nil }

func (m loginModel) submit() tea.Cmd {
	s := m.env.session
	email := strings.TrimSpace(m.form.value(0))
	password := m.form.value(1)
	return func() tea.Msg {
		return loginDoneMsg{err: s.Login(context.Background(), email, password)}
	}
}

func (m loginModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			m.form.clearSecrets()
			m.form.focus = 1
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, navigate(session.PathHome)
		case "ctrl+r":
			return m, navigate(pathRegister)
		case "ctrl+f":
			return m, navigate(pathForgot)
		}
		if m.form.handleKey(msg) {
			if m.form.value(0) == "" || m.form.value(1) == "" {
				m.err = "Email and password are required"
				return m, nil
			}
			m.busy = true
			m.err = ""
			return m, m.submit()
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Sign in") + "\n")
	b.WriteString("  " + metaStyle.Render("Enter your credentials to access your dashboard.") + "\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("Signing in...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpBar("tab", "next", "enter", "sign in", "ctrl+r", "register", "ctrl+f", "forgot", "esc", "back")
}

func (m loginModel) editing() bool { return true }
