package tui

import (
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campusmaster/campus/internal/guard"
	"github.com/campusmaster/campus/internal/notify"
	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/client"
)

// Deps are the collaborators the app drives. Client, Session and Feed
// are required.
type Deps struct {
	Client  *client.Client
	Session *session.Session
	Feed    *notify.Feed
	// Nav must be the Navigator the Session was built with.
	Nav    *Navigator
	Logger *log.Logger
	APIURL string
}

// App is the root Bubbletea model.
type App struct {
	env        *env
	nav        *Navigator
	sessionSig chan struct{}
	path       string
	screen     screen
	state      session.State
	snap       notify.Snapshot
	help       []helpItem
	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the TUI application showing startPath ("/" when empty).
func NewApp(d Deps, startPath string) App {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard, "", 0)
	}
	if d.Nav == nil {
		d.Nav = NewNavigator()
	}
	sig := make(chan struct{}, 1)
	d.Session.Subscribe(func(session.State) {
		select {
		case sig <- struct{}{}:
		default:
		}
	})

	a := App{
		env: &env{
			client:  d.Client,
			session: d.Session,
			feed:    d.Feed,
			logger:  d.Logger,
		},
		nav:        d.Nav,
		sessionSig: sig,
		state:      d.Session.State(),
		snap:       d.Feed.Snapshot(),
		help:       helpItems(d.APIURL),
	}
	if startPath == "" {
		startPath = session.PathHome
	}
	a.path, a.screen = a.build(startPath)
	return a
}

func (a App) Init() tea.Cmd {
	s := a.env.session
	return tea.Batch(
		shimmerTickCmd(),
		func() tea.Msg {
			s.Resolve()
			return nil
		},
		a.screen.Init(),
		waitForNav(a.nav),
		waitForFeed(a.env.feed),
		waitForSession(a.sessionSig, s),
	)
}

// build constructs the screen for path, wrapping protected paths in the
// guard. Unknown paths fall back to home.
func (a App) build(path string) (string, screen) {
	ctor, ok := routes[path]
	if !ok {
		a.env.logger.Printf("tui: no screen for %q", path)
		path = session.PathHome
		ctor = routes[path]
	}
	page := ctor(a.env)
	if req, protected := guard.ForPath(path); protected {
		return path, newGuardedModel(a.env, page, req)
	}
	return path, page
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		var rearm tea.Cmd
		if msg.signal {
			rearm = waitForNav(a.nav)
		}
		a.helpOpen = false
		a.path, a.screen = a.build(msg.path)
		a.env.logger.Printf("tui: -> %s", a.path)
		return a, tea.Batch(a.screen.Init(), rearm)

	case sessionChangedMsg:
		var rearm tea.Cmd
		if msg.signal {
			a.state = msg.state
			rearm = waitForSession(a.sessionSig, a.env.session)
		}
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		return a, tea.Batch(cmd, rearm)

	case feedChangedMsg:
		a.snap = msg.snap
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		return a, tea.Batch(cmd, waitForFeed(a.env.feed))

	case tea.KeyMsg:
		if a.helpOpen {
			return a.updateHelp(msg)
		}
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.screen.editing() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

// globalKey handles shortcuts available on every screen that is not
// taking text input.
func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	authed := a.state.IsAuthenticated()
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "h":
		a.helpOpen = true
		a.helpCursor = 0
		return nil, true
	case "n":
		if authed && a.path != pathNotifications {
			return navigate(pathNotifications), true
		}
	case "d":
		if authed {
			return navigate(guard.HomePath(a.state)), true
		}
	case "s":
		if a.state.IsUser() && a.path != pathSubmissions {
			return navigate(pathSubmissions), true
		}
	case "L":
		if authed {
			return logoutCmd(a.env.session), true
		}
	}
	return nil, false
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "esc":
		a.helpOpen = false
	case "q", "ctrl+c":
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(a.help)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		if a.helpCursor < len(a.help) {
			url, logger := a.help[a.helpCursor].url, a.env.logger
			return a, func() tea.Msg {
				if err := openURL(url); err != nil {
					logger.Printf("tui: open %s: %v", url, err)
				}
				return nil
			}
		}
	}
	return a, nil
}

func (a App) header() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	var parts []string
	if u := a.state.User; u != nil && a.state.IsAuthenticated() {
		parts = append(parts, selectedStyle.Render(u.FullName()), RoleBadge(u))
		if badge := unreadBadge(a.snap.UnreadCount); badge != "" {
			parts = append(parts, badge)
		}
	}
	parts = append(parts, dimStyle.Render(a.path))
	status := strings.Join(parts, " ")
	statusPad := max((a.width-lipgloss.Width(status))/2, 0)
	return header + "\n" + strings.Repeat(" ", statusPad) + status
}

func (a App) View() string {
	body := a.screen.View()
	help := a.screen.helpKeys()
	if a.helpOpen {
		body = helpView(a.help, a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}

	// Chrome budget: header(2) + blank(1) + help(1)
	const chrome = 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n\n%s\n%s", a.header(), body, help)
}
