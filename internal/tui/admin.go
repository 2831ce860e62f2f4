package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/campusmaster/campus/pkg/domain"
)

// -- messages --

type adminLoadedMsg struct {
	users   []domain.User
	pending []domain.User
	err     error
}

type adminActionMsg struct {
	verb  string
	email string
	err   error
}

// -- model --

const (
	adminTabUsers = iota
	adminTabPending
)

// adminAction is a suspension change waiting for y/n.
type adminAction struct {
	verb  string // "suspend", "unsuspend" or "approve"
	email string
}

type adminModel struct {
	env     *env
	tab     int
	users   []domain.User
	pending []domain.User
	cursor  int
	loading bool
	busy    bool
	confirm *adminAction
	err     string
	status  string
}

func newAdminModel(e *env) screen {
	return adminModel{env: e, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return m.load()
}

// load fetches all users and pending teachers concurrently.
func (m adminModel) load() tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		var msg adminLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.users, err = c.AllUsers(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.pending, err = c.PendingTeachers(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func (m adminModel) act(a adminAction) tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		var err error
		if a.verb == "suspend" {
			_, err = c.SuspendUser(context.Background(), a.email)
		} else {
			_, err = c.UnsuspendUser(context.Background(), a.email)
		}
		return adminActionMsg{verb: a.verb, email: a.email, err: err}
	}
}

func (m adminModel) rows() []domain.User {
	if m.tab == adminTabPending {
		return m.pending
	}
	return m.users
}

func (m adminModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adminLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.users, m.pending = msg.users, msg.pending
		m.cursor = clampCursor(m.cursor, len(m.rows()))

	case adminActionMsg:
		m.busy = false
		if msg.err != nil {
			m.err = fmt.Sprintf("%s %s: %v", msg.verb, msg.email, msg.err)
			return m, nil
		}
		m.err = ""
		m.status = adminDone(msg.verb, msg.email)
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func adminDone(verb, email string) string {
	switch verb {
	case "suspend":
		return "Suspended " + email
	case "approve":
		return "Approved " + email
	}
	return "Unsuspended " + email
}

func (m adminModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "y":
			a := *m.confirm
			m.confirm = nil
			m.busy = true
			m.status = ""
			return m, m.act(a)
		case "n", "esc":
			m.confirm = nil
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	rows := m.rows()
	switch msg.String() {
	case "tab":
		m.tab = 1 - m.tab
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.loading = true
		return m, m.load()
	case "s":
		if m.tab == adminTabUsers && m.cursor < len(rows) && !rows[m.cursor].Suspended && !rows[m.cursor].IsAdmin() {
			m.confirm = &adminAction{verb: "suspend", email: rows[m.cursor].Email}
		}
	case "u":
		if m.tab == adminTabUsers && m.cursor < len(rows) && rows[m.cursor].Suspended {
			m.confirm = &adminAction{verb: "unsuspend", email: rows[m.cursor].Email}
		}
	case "a":
		if m.tab == adminTabPending && m.cursor < len(rows) {
			m.confirm = &adminAction{verb: "approve", email: rows[m.cursor].Email}
		}
	}
	return m, nil
}

func (m adminModel) View() string {
	var b strings.Builder

	tabs := []string{
		fmt.Sprintf("All users (%d)", len(m.users)),
		fmt.Sprintf("Pending teachers (%d)", len(m.pending)),
	}
	b.WriteString(" ")
	for i, t := range tabs {
		if i == m.tab {
			b.WriteString(selectedStyle.Underline(true).Render(t))
		} else {
			b.WriteString(dimStyle.Render(t))
		}
		b.WriteString("   ")
	}
	b.WriteString("\n\n")

	if m.loading && len(m.users) == 0 && len(m.pending) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}

	rows := m.rows()
	if len(rows) == 0 {
		empty := "no users"
		if m.tab == adminTabPending {
			empty = "no teachers awaiting approval"
		}
		b.WriteString(" " + dimStyle.Render(empty) + "\n")
	}
	for i, u := range rows {
		cursor := " "
		name := normalStyle.Render(fmt.Sprintf("%-24s", truncStr(u.FullName(), 24)))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(fmt.Sprintf("%-24s", truncStr(u.FullName(), 24)))
		}
		row := fmt.Sprintf(" %s %s  %s  %s", cursor, name, metaStyle.Render(fmt.Sprintf("%-32s", truncStr(u.Email, 32))), RoleBadge(&u))
		if u.Suspended {
			label := "suspended"
			if m.tab == adminTabPending {
				label = "pending"
			}
			row += "  " + warnStyle.Render(label)
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirm != nil:
		b.WriteString(" " + warnStyle.Render(fmt.Sprintf("%s %s? ", capitalize(m.confirm.verb), m.confirm.email)) + helpEntry("y", "yes") + "  " + helpEntry("n", "no") + "\n")
	case m.busy:
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	case m.status != "":
		b.WriteString(" " + successStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m adminModel) helpKeys() string {
	if m.confirm != nil {
		return helpBar("y", "confirm", "n", "cancel")
	}
	if m.tab == adminTabPending {
		return helpBar("tab", "users", "j/k", "nav", "a", "approve", "r", "refresh", "n", "notifications", "L", "logout", "q", "quit")
	}
	return helpBar("tab", "pending", "j/k", "nav", "s", "suspend", "u", "unsuspend", "r", "refresh", "n", "notifications", "L", "logout", "q", "quit")
}

func (m adminModel) editing() bool { return m.confirm != nil }
