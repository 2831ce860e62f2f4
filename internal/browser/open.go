// Package browser hands URLs to the desktop's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// command builds the platform opener. Tests replace it.
var command = func(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// Open opens the specified URL in the user's default browser.
// Only absolute http and https URLs are accepted.
func Open(rawURL string) error {
	if err := Check(rawURL); err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return command("open", rawURL).Start()
	case "linux":
		return command("xdg-open", rawURL).Start()
	case "windows":
		return command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// Check reports whether rawURL is safe to hand to the OS opener.
func Check(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("browser.Open: refusing %q URL", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("browser.Open: missing host in %q", rawURL)
	}
	return nil
}
