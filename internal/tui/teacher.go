package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/campusmaster/campus/pkg/domain"
)

type teacherLoadedMsg struct {
	courses     []domain.Course
	assignments []domain.Assignment
	err         error
}

// teacherModel is the teacher dashboard: own courses and assignments.
type teacherModel struct {
	env         *env
	courses     []domain.Course
	assignments []domain.Assignment
	loading     bool
	err         string
}

func newTeacherModel(e *env) screen {
	return teacherModel{env: e, loading: true}
}

func (m teacherModel) Init() tea.Cmd { return m.load() }

func (m teacherModel) load() tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		var msg teacherLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.courses, err = c.MyCourses(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.assignments, err = c.MyAssignments(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func (m teacherModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case teacherLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.courses, m.assignments = msg.courses, msg.assignments
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m teacherModel) View() string {
	var b strings.Builder
	if m.loading && m.courses == nil {
		return " " + dimStyle.Render("loading...") + "\n"
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n\n")
	}

	published := 0
	for _, c := range m.courses {
		if c.Published {
			published++
		}
	}
	b.WriteString(" " + sectionHeaderStyle.Render("My courses") + " " +
		metaStyle.Render(fmt.Sprintf("%d total . %d published", len(m.courses), published)) + "\n")
	if len(m.courses) == 0 {
		b.WriteString("   " + dimStyle.Render("no courses yet") + "\n")
	}
	for _, c := range m.courses {
		state := dimStyle.Render("draft")
		if c.Published {
			state = successStyle.Render("published")
		}
		subject := ""
		if c.Subject != nil {
			subject = c.Subject.Code
		}
		fmt.Fprintf(&b, "   %s  %s  %s\n",
			normalStyle.Render(fmt.Sprintf("%-32s", truncStr(c.Title, 32))),
			metaStyle.Render(fmt.Sprintf("%-10s", subject)), state)
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("My assignments") + " " +
		metaStyle.Render(fmt.Sprintf("%d total", len(m.assignments))) + "\n")
	if len(m.assignments) == 0 {
		b.WriteString("   " + dimStyle.Render("no assignments yet") + "\n")
	}
	for _, a := range m.assignments {
		state := dimStyle.Render("draft")
		if a.Published {
			state = successStyle.Render("published")
		}
		fmt.Fprintf(&b, "   %s  %s  %s\n",
			normalStyle.Render(fmt.Sprintf("%-32s", truncStr(a.Title, 32))),
			metaStyle.Render(fmt.Sprintf("%-14s", formatDeadline(a.Deadline))), state)
	}
	return b.String()
}

func (m teacherModel) helpKeys() string {
	return helpBar("r", "refresh", "n", "notifications", "L", "logout", "h", "help", "q", "quit")
}

func (m teacherModel) editing() bool { return false }
