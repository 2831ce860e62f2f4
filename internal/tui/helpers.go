package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusmaster/campus/pkg/domain"
)

// formatTime renders a relative timestamp for notification and list displays.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatDeadline renders an assignment deadline relative to now.
func formatDeadline(ts *domain.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "no deadline"
	}
	d := time.Until(ts.Time)
	switch {
	case d < 0:
		return "closed"
	case d < time.Hour:
		return fmt.Sprintf("due in %dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("due in %dh", int(d.Hours()))
	default:
		return "due " + ts.Format("Jan 2")
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace so multi-line server
// text fits in a single list row.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// clampCursor keeps a list cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
