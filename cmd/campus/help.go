package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var commands = []struct{ cmd, desc string }{
	{"campus", "Open the dashboard (interactive TUI)"},
	{"campus login", "Sign in with email and password"},
	{"campus logout", "Clear the saved session"},
	{"campus whoami", "Show the signed-in account"},
	{"campus notifications", "List notifications"},
	{"campus --version", "Show version"},
	{"campus help", "You are here"},
}

var envVars = []struct{ name, desc string }{
	{"CAMPUS_API_URL", "API base URL"},
	{"CAMPUS_STATE_PATH", "Session file (default ~/.campusmaster/state.db)"},
	{"CAMPUS_POLL_INTERVAL", "Notification poll interval (default 30s)"},
	{"CAMPUS_HTTP_TIMEOUT", "Request timeout (default 30s)"},
	{"CAMPUS_LOG_FILE", "Write debug logs to this file"},
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("C A M P U S M A S T E R")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Courses, assignments and grades from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprint(w, "\n  Environment:\n")
	for _, e := range envVars {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}
