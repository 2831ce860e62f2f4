package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/campusmaster/campus/internal/config"
	"github.com/campusmaster/campus/internal/notify"
	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/internal/store"
	"github.com/campusmaster/campus/internal/tui"
	"github.com/campusmaster/campus/pkg/client"
	"github.com/campusmaster/campus/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotSignedIn = errors.New("not signed in; run: campus login")
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(out, "campus "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) == 0 {
		return runTUI(ctx, cfg, logger)
	}
	switch args[0] {
	case "login":
		return runLogin(ctx, cfg, logger, in, out)
	case "logout":
		return runLogout(cfg, logger, out)
	case "whoami":
		return runWhoami(ctx, cfg, logger, out)
	case "notifications":
		return runNotifications(ctx, cfg, logger, out)
	default:
		printHelp(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// newLogger writes to cfg.LogFile when set. Otherwise logs are discarded:
// the TUI owns the terminal.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "campus")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil //nolint:errcheck
}

// deps are the collaborators shared by the TUI and the subcommands.
type deps struct {
	store  *store.Store
	client *client.Client
}

func openDeps(cfg config.Config, logger *log.Logger) (*deps, error) {
	st, err := store.Open(cfg.StatePath, logger)
	if err != nil {
		return nil, err
	}
	c := client.New(cfg.APIURL, st,
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(logger),
	)
	return &deps{store: st, client: c}, nil
}

func (d *deps) close() {
	d.store.Close() //nolint:errcheck
}

func runTUI(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	d, err := openDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	nav := tui.NewNavigator()
	sess := session.New(d.client, d.store, nav, session.WithLogger(logger))
	feed := notify.New(d.client,
		notify.WithInterval(cfg.PollInterval),
		notify.WithLogger(logger),
	)
	unbind := feed.Bind(ctx, sess)
	defer unbind()

	app := tui.NewApp(tui.Deps{
		Client:  d.client,
		Session: sess,
		Feed:    feed,
		Nav:     nav,
		Logger:  logger,
		APIURL:  cfg.APIURL,
	}, session.PathHome)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(ctx context.Context, cfg config.Config, logger *log.Logger, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Email: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read email: %w", err)
	}
	email := strings.TrimSpace(line)
	if email == "" {
		return errors.New("email is required")
	}

	fmt.Fprint(out, "Password: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(pwd) == 0 {
		return errors.New("password is required")
	}

	d, err := openDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	sess := session.New(d.client, d.store, nil, session.WithLogger(logger))
	sess.Resolve()
	if err := sess.Login(ctx, email, string(pwd)); err != nil {
		return err
	}
	u := sess.State().User
	fmt.Fprintf(out, "Signed in as %s (%s)\n", u.FullName(), roleNames(u))
	fmt.Fprintln(out, "Run campus to open your dashboard.")
	return nil
}

func runLogout(cfg config.Config, logger *log.Logger, out io.Writer) error {
	d, err := openDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	sess := session.New(d.client, d.store, nil, session.WithLogger(logger))
	if !sess.Resolve().IsAuthenticated() {
		fmt.Fprintln(out, "Already logged out.")
		return nil
	}
	sess.Logout()
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runWhoami(ctx context.Context, cfg config.Config, logger *log.Logger, out io.Writer) error {
	d, err := openDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	st := session.New(d.client, d.store, nil, session.WithLogger(logger)).Resolve()
	if !st.IsAuthenticated() {
		return errNotSignedIn
	}

	u := st.User
	// Only a 401 means the cached session is stale; other failures fall
	// back to the cached profile.
	if fresh, err := d.client.GetUserInfo(ctx); err == nil {
		u = fresh
	} else if client.IsStatus(err, http.StatusUnauthorized) {
		return errors.New("session expired; run: campus login")
	} else {
		logger.Printf("whoami: %v", err)
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fmt.Fprintf(out, "%s %s\n", label.Render("name: "), u.FullName())
	fmt.Fprintf(out, "%s %s\n", label.Render("email:"), u.Email)
	fmt.Fprintf(out, "%s %s\n", label.Render("roles:"), roleNames(u))

	exp, ok, err := session.TokenExpiry(st.Token)
	switch {
	case err != nil:
		logger.Printf("whoami: %v", err)
	case !ok:
		fmt.Fprintf(out, "%s %s\n", label.Render("token:"), "no expiry")
	case time.Now().After(exp):
		fmt.Fprintf(out, "%s expired %s\n", label.Render("token:"), exp.Local().Format(time.DateTime))
	default:
		fmt.Fprintf(out, "%s expires %s\n", label.Render("token:"), exp.Local().Format(time.DateTime))
	}
	return nil
}

func runNotifications(ctx context.Context, cfg config.Config, logger *log.Logger, out io.Writer) error {
	d, err := openDeps(cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	if !session.New(d.client, d.store, nil).Resolve().IsAuthenticated() {
		return errNotSignedIn
	}

	var (
		items  []domain.Notification
		unread int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = d.client.ListNotifications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = d.client.NotificationUnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	fmt.Fprintf(out, "%d notifications, %d unread\n", len(items), unread)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for _, n := range items {
		mark := " "
		if !n.Read {
			mark = "•"
		}
		fmt.Fprintf(out, "%s %-10s %s %s\n", mark, n.Type.Category(), n.Title,
			dim.Render(n.CreatedAt.Local().Format(time.DateTime)))
	}
	return nil
}

func roleNames(u *domain.User) string {
	if u == nil || len(u.Roles) == 0 {
		return domain.RoleUser
	}
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.RoleName
	}
	return strings.Join(names, ", ")
}
