package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campusmaster/campus/pkg/domain"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "CAMPUS" as a wave of blue light moving
// from navy (#1e3a8a) to sky (#38bdf8).
func renderShimmerLogo(frame int) string {
	const text = "CAMPUS"
	n := len(text)

	var out string
	t := float64(frame)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(30 + b*(56-30))
		g := clampByte(58 + b*(189-58))
		bl := clampByte(138 + b*(248-138))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out += lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color)).
			Render(string(text[i]))
		if i < n-1 {
			out += " "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#38bdf8"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#38bdf8")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111118")).
			Background(lipgloss.Color("#e06060")).
			Bold(true)

	deniedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#b45555")).
			Padding(1, 3)

	// Notification category colors.
	categoryColors = map[string]lipgloss.Color{
		"assignment": lipgloss.Color("#60a0e0"),
		"grade":      lipgloss.Color("#34d474"),
		"submission": lipgloss.Color("#b080d0"),
		"course":     lipgloss.Color("#3ecce4"),
		"teacher":    lipgloss.Color("#f0944a"),
		"message":    lipgloss.Color("#d4a844"),
		"system":     lipgloss.Color("#8890a0"),
	}

	roleColors = map[string]lipgloss.Color{
		domain.RoleAdmin:   lipgloss.Color("#e06060"),
		domain.RoleTeacher: lipgloss.Color("#f0944a"),
		domain.RoleUser:    lipgloss.Color("#60a0e0"),
	}
)

// CategoryStyle returns a bold style colored for a notification category.
func CategoryStyle(category string) lipgloss.Style {
	if c, ok := categoryColors[category]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// RoleBadge returns a short colored badge for the user's primary role, e.g. "[Admin]".
func RoleBadge(u *domain.User) string {
	if u == nil {
		return ""
	}
	role := domain.RoleUser
	switch {
	case u.IsAdmin():
		role = domain.RoleAdmin
	case u.IsTeacher():
		role = domain.RoleTeacher
	}
	return lipgloss.NewStyle().Foreground(roleColors[role]).Bold(true).Render("[" + role + "]")
}

// unreadBadge renders the header's unread counter, or "" when there is nothing unread.
func unreadBadge(n int) string {
	if n <= 0 {
		return ""
	}
	label := fmt.Sprintf(" %d ", n)
	if n > 99 {
		label = " 99+ "
	}
	return badgeStyle.Render(label)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key/label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

func helpItems(apiURL string) []helpItem {
	return []helpItem{
		{"API", apiURL, apiURL},
	}
}

// helpView renders the interactive help overlay with a cursor.
func helpView(items []helpItem, cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#38bdf8")).
		Bold(true).
		Render("C A M P U S M A S T E R")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#38bdf8"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"campus", "Open the interactive client"},
		{"campus login", "Sign in from the terminal"},
		{"campus logout", "Clear the saved session"},
		{"campus whoami", "Show the signed-in account"},
		{"campus notifications", "List notifications"},
		{"campus version", "Show version"},
	}
	keys := []struct{ key, desc string }{
		{"d", "Go to my dashboard"},
		{"n", "Notifications"},
		{"s", "My submissions (students)"},
		{"L", "Log out"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", k.key)), descStyle.Render(k.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range items {
		label := cmdStyle.Render(fmt.Sprintf("%-22s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-22s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
