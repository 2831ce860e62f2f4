package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/session"
)

// passwordDoneMsg carries the server's reply to a forgot or reset request.
type passwordDoneMsg struct {
	reply string
	err   error
}

// passwordModel serves both the forgot-password and reset-password
// screens; reset is set for the latter.
type passwordModel struct {
	env   *env
	reset bool
	form  form
	busy  bool
	err   string
	done  string
}

func newForgotModel(e *env) screen {
	return passwordModel{env: e, form: newForm(formField{label: "Email"})}
}

func newResetModel(e *env) screen {
	return passwordModel{
		env:   e,
		reset: true,
		form: newForm(
			formField{label: "Reset token"},
			formField{label: "New password", secret: true},
			formField{label: "Confirm password", secret: true},
		),
	}
}

func (m passwordModel) Init() tea.Cmd { return nil }

func (m passwordModel) submit() tea.Cmd {
	s := m.env.session
	if m.reset {
		r := session.PasswordReset{
			Token:           strings.TrimSpace(m.form.value(0)),
			Password:        m.form.value(1),
			ConfirmPassword: m.form.value(2),
		}
		return func() tea.Msg {
			reply, err := s.ResetPassword(context.Background(), r)
			return passwordDoneMsg{reply: reply, err: err}
		}
	}
	email := strings.TrimSpace(m.form.value(0))
	return func() tea.Msg {
		reply, err := s.ForgotPassword(context.Background(), email)
		return passwordDoneMsg{reply: reply, err: err}
	}
}

func (m passwordModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case passwordDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err.Error()
			m.form.clearSecrets()
			return m, nil
		}
		m.err = ""
		m.done = msg.reply
		if m.done == "" {
			m.done = "Done."
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.done != "" {
			switch msg.String() {
			case "enter", "esc":
				return m, navigate(session.PathLogin)
			case "t":
				if !m.reset {
					return m, navigate(pathReset)
				}
			}
			return m, nil
		}
		if msg.String() == "esc" {
			return m, navigate(session.PathLogin)
		}
		if m.form.handleKey(msg) {
			m.busy = true
			m.err = ""
			return m, m.submit()
		}
	}
	return m, nil
}

func (m passwordModel) View() string {
	var b strings.Builder
	title, hint := "Forgot password", "We will email you a link to reset your password."
	if m.reset {
		title, hint = "Reset password", "Paste the token from the reset email and choose a new password."
	}
	b.WriteString("\n  " + sectionHeaderStyle.Render(title) + "\n")
	b.WriteString("  " + metaStyle.Render(hint) + "\n\n")
	if m.done != "" {
		b.WriteString("  " + successStyle.Render(oneLine(m.done)) + "\n\n")
		b.WriteString("  " + helpEntry("enter", "go to sign in"))
		if !m.reset {
			b.WriteString("  " + helpEntry("t", "I have a token"))
		}
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.form.View())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("Sending...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m passwordModel) helpKeys() string {
	if m.done != "" {
		return helpBar("enter", "sign in")
	}
	return helpBar("tab", "next", "enter", "submit", "esc", "back")
}

func (m passwordModel) editing() bool { return m.done == "" }
