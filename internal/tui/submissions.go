package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmaster/campus/internal/browser"
	"github.com/campusmaster/campus/pkg/domain"
)

// Swapped in tests.
var (
	openURL         = browser.Open
	copyToClipboard = clipboard.WriteAll
)

type submissionsLoadedMsg struct {
	items []domain.Submission
	err   error
}

// downloadMsg reports what happened to a submission's download link.
type downloadMsg struct {
	verb string // "opened" or "copied"
	err  error
}

type submissionsModel struct {
	env     *env
	items   []domain.Submission
	cursor  int
	loading bool
	busy    bool
	err     string
	status  string
}

func newSubmissionsModel(e *env) screen {
	return submissionsModel{env: e, loading: true}
}

func (m submissionsModel) Init() tea.Cmd { return m.load() }

func (m submissionsModel) load() tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		items, err := c.MySubmissions(context.Background())
		return submissionsLoadedMsg{items: items, err: err}
	}
}

// download issues a short-lived link for the submission and hands it to
// the browser or the clipboard.
func (m submissionsModel) download(id int64, copyOnly bool) tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		url, err := c.SubmissionDownloadURL(context.Background(), id)
		if err != nil {
			return downloadMsg{err: err}
		}
		if copyOnly {
			return downloadMsg{verb: "copied", err: copyToClipboard(url)}
		}
		return downloadMsg{verb: "opened", err: openURL(url)}
	}
}

func (m submissionsModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submissionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.items = msg.items
		m.cursor = clampCursor(m.cursor, len(m.items))

	case downloadMsg:
		m.busy = false
		if msg.err != nil {
			m.err = "download link: " + msg.err.Error()
			m.status = ""
			return m, nil
		}
		m.err = ""
		if msg.verb == "copied" {
			m.status = "Download link copied to clipboard"
		} else {
			m.status = "Download link opened in browser"
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "o", "enter":
			if m.cursor < len(m.items) {
				m.busy = true
				return m, m.download(m.items[m.cursor].ID, false)
			}
		case "c":
			if m.cursor < len(m.items) {
				m.busy = true
				return m, m.download(m.items[m.cursor].ID, true)
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m submissionsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("My submissions") + "\n\n")
	if m.loading && m.items == nil {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 && m.err == "" {
		b.WriteString(" " + dimStyle.Render("no submissions yet") + "\n")
	}
	for i, s := range m.items {
		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
		}
		title := ""
		if s.Assignment != nil {
			title = s.Assignment.Title
		}
		grade := dimStyle.Render("ungraded")
		if s.Grade != nil {
			grade = successStyle.Render(fmt.Sprintf("%.1f", s.Grade.Score))
		}
		late := ""
		if s.Late {
			late = "  " + warnStyle.Render("late")
		}
		fmt.Fprintf(&b, " %s %s  %s  %s  %s%s\n", cursor,
			normalStyle.Render(fmt.Sprintf("%-28s", truncStr(title, 28))),
			metaStyle.Render(fmt.Sprintf("v%-2d %-24s", s.Version, truncStr(s.FileName, 24))),
			dimStyle.Render(fmt.Sprintf("%-8s", formatTime(s.SubmittedAt.Time))),
			grade, late)
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("requesting link...") + "\n")
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	case m.status != "":
		b.WriteString(" " + successStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m submissionsModel) helpKeys() string {
	return helpBar("j/k", "nav", "o", "open", "c", "copy link", "r", "refresh", "d", "dashboard", "q", "quit")
}

func (m submissionsModel) editing() bool { return false }
