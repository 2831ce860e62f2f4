package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/domain"
)

const (
	choiceStudent = "Student"
	choiceTeacher = "Teacher"
)

// registerDoneMsg carries the outcome of a sign-up.
type registerDoneMsg struct {
	err error
}

type registerModel struct {
	env     *env
	form    form
	busy    bool
	err     string
	pending bool // teacher account created, awaiting approval
}

func newRegisterModel(e *env) screen {
	return registerModel{
		env: e,
		form: newForm(
			formField{label: "Email"},
			formField{label: "First name"},
			formField{label: "Last name"},
			formField{label: "Password", secret: true},
			formField{label: "Confirm password", secret: true},
			formField{label: "I am a", choices: []string{choiceStudent, choiceTeacher}},
		),
	}
}

func (m registerModel) Init() tea.Cmd { return nil }

func (m registerModel) registration() session.Registration {
	r := session.Registration{
		Email:           strings.TrimSpace(m.form.value(0)),
		FirstName:       strings.TrimSpace(m.form.value(1)),
		LastName:        strings.TrimSpace(m.form.value(2)),
		Password:        m.form.value(3),
		ConfirmPassword: m.form.value(4),
	}
	if m.form.value(5) == choiceTeacher {
		r.Role = domain.RoleTeacher
	}
	return r
}

func (m registerModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, session.ErrTeacherPendingApproval):
			m.pending = true
			m.err = ""
		case msg.err != nil:
			m.err = msg.err.Error()
			m.form.clearSecrets()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if m.pending {
			if msg.String() == "enter" || msg.String() == "esc" {
				return m, navigate(session.PathLogin)
			}
			return m, nil
		}
		if msg.String() == "esc" {
			return m, navigate(session.PathLogin)
		}
		if m.form.handleKey(msg) {
			m.busy = true
			m.err = ""
			s, r := m.env.session, m.registration()
			return m, func() tea.Msg {
				return registerDoneMsg{err: s.Register(context.Background(), r)}
			}
		}
	}
	return m, nil
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("Create account") + "\n\n")
	if m.pending {
		b.WriteString("  " + successStyle.Render("Teacher account created.") + "\n")
		b.WriteString("  " + metaStyle.Render(session.MsgTeacherPending) + "\n\n")
		b.WriteString("  " + helpEntry("enter", "go to sign in") + "\n")
		return b.String()
	}
	b.WriteString(m.form.View())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("Creating account...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m registerModel) helpKeys() string {
	if m.pending {
		return helpBar("enter", "sign in")
	}
	return helpBar("tab", "next", "←/→", "role", "ctrl+s", "submit", "esc", "back")
}

func (m registerModel) editing() bool { return !m.pending }
