package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/campusmaster/campus/pkg/domain"
)

type studentLoadedMsg struct {
	enrollments []domain.CourseEnrollment
	upcoming    []domain.Assignment
	average     float64
	err         error
}

// studentModel is the user dashboard: enrollments, upcoming work and the
// running grade average.
type studentModel struct {
	env         *env
	enrollments []domain.CourseEnrollment
	upcoming    []domain.Assignment
	average     float64
	loading     bool
	err         string
}

func newStudentModel(e *env) screen {
	return studentModel{env: e, loading: true}
}

func (m studentModel) Init() tea.Cmd { return m.load() }

func (m studentModel) load() tea.Cmd {
	c := m.env.client
	return func() tea.Msg {
		var msg studentLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.enrollments, err = c.MyEnrollments(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.upcoming, err = c.UpcomingAssignments(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.average, err = c.MyAverage(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func (m studentModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studentLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.enrollments, m.upcoming, m.average = msg.enrollments, msg.upcoming, msg.average
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m studentModel) View() string {
	var b strings.Builder
	if m.loading && m.enrollments == nil {
		return " " + dimStyle.Render("loading...") + "\n"
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n\n")
	}

	b.WriteString(" " + sectionHeaderStyle.Render("Average") + " " +
		accentStyle.Render(fmt.Sprintf("%.1f", m.average)) + "\n\n")

	b.WriteString(" " + sectionHeaderStyle.Render("My courses") + "\n")
	if len(m.enrollments) == 0 {
		b.WriteString("   " + dimStyle.Render("not enrolled in any course") + "\n")
	}
	for _, e := range m.enrollments {
		title, teacher := "", ""
		if e.Course != nil {
			title = e.Course.Title
			teacher = e.Course.Teacher.FullName()
		}
		status := metaStyle.Render(strings.ToLower(e.Status))
		if e.Status == domain.EnrollmentActive {
			status = successStyle.Render("active")
		}
		fmt.Fprintf(&b, "   %s  %s  %s\n",
			normalStyle.Render(fmt.Sprintf("%-32s", truncStr(title, 32))),
			metaStyle.Render(fmt.Sprintf("%-20s", truncStr(teacher, 20))), status)
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Upcoming assignments") + "\n")
	if len(m.upcoming) == 0 {
		b.WriteString("   " + dimStyle.Render("nothing due") + "\n")
	}
	for _, a := range m.upcoming {
		course := ""
		if a.Course != nil {
			course = a.Course.Title
		}
		fmt.Fprintf(&b, "   %s  %s  %s\n",
			normalStyle.Render(fmt.Sprintf("%-32s", truncStr(a.Title, 32))),
			metaStyle.Render(fmt.Sprintf("%-20s", truncStr(course, 20))),
			warnStyle.Render(formatDeadline(a.Deadline)))
	}
	return b.String()
}

func (m studentModel) helpKeys() string {
	return helpBar("s", "submissions", "r", "refresh", "n", "notifications", "L", "logout", "h", "help", "q", "quit")
}

func (m studentModel) editing() bool { return false }
