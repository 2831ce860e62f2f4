package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/guard"
	"github.com/campusmaster/campus/internal/session"
)

// guardedModel wraps a protected page. The page's Init, which is where
// its data loads start, runs only once the guard allows it.
type guardedModel struct {
	env        *env
	page       screen
	req        guard.Requirement
	decision   guard.Decision
	started    bool
	redirected bool
	denied     deniedModel
}

func newGuardedModel(e *env, page screen, req guard.Requirement) guardedModel {
	return guardedModel{env: e, page: page, req: req, decision: guard.Loading}
}

func (m guardedModel) Init() tea.Cmd {
	st := m.env.session.State()
	return func() tea.Msg { return sessionChangedMsg{state: st} }
}

func (m guardedModel) evaluate(st session.State) (guardedModel, tea.Cmd) {
	m.decision = guard.Check(st, m.req)
	switch m.decision {
	case guard.RedirectLogin:
		if !m.redirected {
			m.redirected = true
			return m, navigate(session.PathLogin)
		}
	case guard.Denied:
		m.denied = newDeniedModel(m.env, st)
	case guard.Allow:
		if !m.started {
			m.started = true
			return m, m.page.Init()
		}
	}
	return m, nil
}

func (m guardedModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	if msg, ok := msg.(sessionChangedMsg); ok {
		var cmd, pageCmd tea.Cmd
		m, cmd = m.evaluate(msg.state)
		if m.started && m.decision == guard.Allow {
			m.page, pageCmd = m.page.Update(msg)
		}
		return m, tea.Batch(cmd, pageCmd)
	}

	var cmd tea.Cmd
	switch m.decision {
	case guard.Allow:
		m.page, cmd = m.page.Update(msg)
	case guard.Denied:
		m.denied, cmd = m.denied.Update(msg)
	}
	return m, cmd
}

func (m guardedModel) View() string {
	switch m.decision {
	case guard.Allow:
		return m.page.View()
	case guard.Denied:
		return m.denied.View()
	case guard.RedirectLogin:
		return "\n  " + dimStyle.Render("Redirecting to sign in...")
	}
	return "\n  " + dimStyle.Render("Loading...")
}

func (m guardedModel) helpKeys() string {
	switch m.decision {
	case guard.Allow:
		return m.page.helpKeys()
	case guard.Denied:
		return m.denied.helpKeys()
	}
	return helpBar("q", "quit")
}

func (m guardedModel) editing() bool {
	return m.decision == guard.Allow && m.page.editing()
}
