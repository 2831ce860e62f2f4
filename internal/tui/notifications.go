package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/notify"
	"github.com/campusmaster/campus/pkg/domain"
)

// feedActionMsg reports the outcome of a feed mutation or refresh.
type feedActionMsg struct {
	what string
	err  error
}

type notificationsModel struct {
	env      *env
	snap     notify.Snapshot
	cursor   int
	expanded bool
	busy     bool
	confirm  bool // delete awaiting y/n
	err      string
}

func newNotificationsModel(e *env) screen {
	return notificationsModel{env: e, snap: e.feed.Snapshot()}
}

func (m notificationsModel) Init() tea.Cmd {
	return m.run("refresh", m.env.feed.Refresh)
}

// run executes a feed call off the event loop.
func (m notificationsModel) run(what string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return feedActionMsg{what: what, err: fn(context.Background())}
	}
}

func (m notificationsModel) selected() (domain.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Items) {
		return domain.Notification{}, false
	}
	return m.snap.Items[m.cursor], true
}

func (m notificationsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedChangedMsg:
		m.snap = msg.snap
		m.cursor = clampCursor(m.cursor, len(m.snap.Items))

	case feedActionMsg:
		m.busy = false
		m.snap = m.env.feed.Snapshot()
		m.cursor = clampCursor(m.cursor, len(m.snap.Items))
		if msg.err != nil {
			m.err = fmt.Sprintf("%s failed: %v", msg.what, msg.err)
		} else {
			m.err = ""
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m notificationsModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.confirm {
		switch msg.String() {
		case "y":
			m.confirm = false
			if n, ok := m.selected(); ok {
				m.busy = true
				return m, m.run("delete", func(ctx context.Context) error {
					return m.env.feed.Delete(ctx, n.ID)
				})
			}
		case "n", "esc":
			m.confirm = false
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.snap.Items)-1 {
			m.cursor++
			m.expanded = false
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
	case "enter":
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.expanded = !m.expanded
		if m.expanded && !n.Read {
			cmd := m.markRead(n.ID)
			return m, cmd
		}
	case "m":
		if n, ok := m.selected(); ok && !n.Read {
			cmd := m.markRead(n.ID)
			return m, cmd
		}
	case "a":
		if m.snap.UnreadCount > 0 {
			m.busy = true
			return m, m.run("mark all as read", m.env.feed.MarkAllAsRead)
		}
	case "x":
		if _, ok := m.selected(); ok {
			m.confirm = true
		}
	case "r":
		m.busy = true
		return m, m.run("refresh", m.env.feed.Refresh)
	}
	return m, nil
}

func (m *notificationsModel) markRead(id int64) tea.Cmd {
	m.busy = true
	feed := m.env.feed
	return m.run("mark as read", func(ctx context.Context) error {
		return feed.MarkAsRead(ctx, id)
	})
}

func (m notificationsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("Notifications") + " " +
		metaStyle.Render(fmt.Sprintf("%d unread", m.snap.UnreadCount)) + "\n\n")

	if m.snap.Loading && len(m.snap.Items) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.snap.Items) == 0 {
		b.WriteString(" " + dimStyle.Render("you're all caught up") + "\n")
	}

	for i, n := range m.snap.Items {
		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
		}
		dot := " "
		title := normalStyle.Render(truncStr(oneLine(n.Title), 48))
		if !n.Read {
			dot = accentStyle.Render("●")
			title = selectedStyle.Render(truncStr(oneLine(n.Title), 48))
		}
		cat := n.Type.Category()
		fmt.Fprintf(&b, " %s %s %s  %s  %s\n", cursor, dot,
			CategoryStyle(cat).Render(fmt.Sprintf("%-10s", cat)), title, dimStyle.Render(formatTime(n.CreatedAt.Time)))
		if i == m.cursor && m.expanded {
			b.WriteString("       " + normalStyle.Render(oneLine(n.Message)) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.confirm:
		b.WriteString(" " + warnStyle.Render("Delete this notification? ") + helpEntry("y", "yes") + "  " + helpEntry("n", "no") + "\n")
	case m.busy:
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func (m notificationsModel) helpKeys() string {
	if m.confirm {
		return helpBar("y", "delete", "n", "cancel")
	}
	return helpBar("j/k", "nav", "enter", "open", "m", "mark read", "a", "mark all", "x", "delete", "r", "refresh", "d", "dashboard", "q", "quit")
}

func (m notificationsModel) editing() bool { return m.confirm }
