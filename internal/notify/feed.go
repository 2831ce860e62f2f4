// Package notify keeps a polled, process-wide cache of the user's
// notifications for as long as a session is authenticated.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campusmaster/campus/internal/session"
	"github.com/campusmaster/campus/pkg/domain"
)

// DefaultInterval is how often the feed polls while active.
const DefaultInterval = 30 * time.Second

// FeedAPI is the subset of the API client the feed needs.
type FeedAPI interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	NotificationUnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int64) error
}

// Snapshot is a copy of the feed state.
type Snapshot struct {
	Items       []domain.Notification
	UnreadCount int
	Loading     bool
}

// Option configures a Feed.
type Option func(*Feed)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.interval = d
		}
	}
}

// WithLogger sets the logger that receives swallowed poll failures.
func WithLogger(l *log.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithOnChange registers a callback invoked after every state change.
// It runs on the goroutine that made the change and must not block.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Feed) { f.onChange = fn }
}

// Feed is the notification cache. The zero value is not usable; use New.
type Feed struct {
	api      FeedAPI
	interval time.Duration
	logger   *log.Logger
	onChange func(Snapshot)
	changes  chan struct{}

	// life serializes Start and Stop.
	life   sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	active  bool
	gen     uint64
	items   []domain.Notification
	unread  int
	loading bool
}

// New creates an inactive feed.
func New(api FeedAPI, opts ...Option) *Feed {
	f := &Feed{
		api:      api,
		interval: DefaultInterval,
		logger:   log.New(io.Discard, "", 0),
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SessionSource is anything that reports session transitions.
type SessionSource interface {
	Subscribe(fn func(session.State)) (unsubscribe func())
}

// Bind ties the feed's lifetime to a session: it starts when the session
// becomes authenticated and stops (and clears) when it becomes anonymous.
// The returned func unbinds and stops the feed.
func (f *Feed) Bind(ctx context.Context, s SessionSource) (unbind func()) {
	unsub := s.Subscribe(func(st session.State) {
		switch st.Phase() {
		case session.Authenticated:
			f.Start(ctx)
		case session.Anonymous:
			f.Stop()
		}
	})
	return func() {
		unsub()
		f.Stop()
	}
}

// Start activates the feed: one fetch now, then one per interval, until
// Stop or ctx is done. Starting a running feed does nothing.
func (f *Feed) Start(ctx context.Context) {
	f.life.Lock()
	defer f.life.Unlock()
	if f.cancel != nil {
		return
	}

	f.mu.Lock()
	f.active = true
	gen := f.gen
	f.mu.Unlock()

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	f.cancel, f.done = cancel, done
	go f.poll(pollCtx, gen, done)
}

func (f *Feed) poll(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	f.fetch(ctx, gen) //nolint:errcheck // logged in fetch
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fetch(ctx, gen) //nolint:errcheck // logged in fetch
		}
	}
}

// Stop cancels polling, waits for the poll goroutine to exit and clears
// the cached state. No fetch that started before Stop can repopulate it.
func (f *Feed) Stop() {
	f.life.Lock()
	defer f.life.Unlock()
	if f.cancel != nil {
		f.cancel()
		<-f.done
		f.cancel, f.done = nil, nil
	}

	f.mu.Lock()
	f.gen++
	f.active = false
	dirty := len(f.items) > 0 || f.unread != 0 || f.loading
	f.items, f.unread, f.loading = nil, 0, false
	f.mu.Unlock()

	if dirty {
		f.changed()
	}
}

// Active reports whether the feed is bound to an authenticated session.
func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Snapshot returns a copy of the current state.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		Items:       slices.Clone(f.items),
		UnreadCount: f.unread,
		Loading:     f.loading,
	}
}

// Changes delivers a signal after state changes. Signals coalesce; read
// Snapshot for the state itself.
func (f *Feed) Changes() <-chan struct{} {
	return f.changes
}

// Refresh fetches the list and the unread count now, marking the feed as
// loading meanwhile. It does nothing while the feed is inactive. Failures
// are logged and returned.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	if !f.active {
		f.mu.Unlock()
		return nil
	}
	gen := f.gen
	f.loading = true
	f.mu.Unlock()
	f.changed()

	err := f.fetch(ctx, gen)

	f.mu.Lock()
	if gen == f.gen {
		f.loading = false
	}
	f.mu.Unlock()
	f.changed()
	return err
}

// fetch loads the list and the count concurrently; both must succeed.
// Results from a generation that has since been stopped are dropped.
func (f *Feed) fetch(ctx context.Context, gen uint64) error {
	var (
		items []domain.Notification
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = f.api.ListNotifications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = f.api.NotificationUnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) {
			f.logger.Printf("notify: fetch: %v", err)
		}
		return fmt.Errorf("notify.Refresh: %w", err)
	}

	f.mu.Lock()
	if gen != f.gen || !f.active {
		f.mu.Unlock()
		return nil
	}
	f.items = items
	f.unread = count
	f.mu.Unlock()
	f.changed()
	return nil
}

// MarkAsRead marks one notification read on the server, then locally.
// On failure the local state is left untouched.
func (f *Feed) MarkAsRead(ctx context.Context, id int64) error {
	gen := f.generation()
	if err := f.api.MarkNotificationRead(ctx, id); err != nil {
		f.logger.Printf("notify: mark %d read: %v", id, err)
		return fmt.Errorf("notify.MarkAsRead: %w", err)
	}
	f.apply(gen, func() {
		for i := range f.items {
			if f.items[i].ID == id && !f.items[i].Read {
				f.items[i].Read = true
				f.unread = max(0, f.unread-1)
			}
		}
	})
	return nil
}

// MarkAllAsRead marks every notification read on the server, then locally.
func (f *Feed) MarkAllAsRead(ctx context.Context) error {
	gen := f.generation()
	if err := f.api.MarkAllNotificationsRead(ctx); err != nil {
		f.logger.Printf("notify: mark all read: %v", err)
		return fmt.Errorf("notify.MarkAllAsRead: %w", err)
	}
	f.apply(gen, func() {
		for i := range f.items {
			f.items[i].Read = true
		}
		f.unread = 0
	})
	return nil
}

// Delete removes a notification on the server, then locally. The unread
// count drops only if the removed item was unread.
func (f *Feed) Delete(ctx context.Context, id int64) error {
	gen := f.generation()
	if err := f.api.DeleteNotification(ctx, id); err != nil {
		f.logger.Printf("notify: delete %d: %v", id, err)
		return fmt.Errorf("notify.Delete: %w", err)
	}
	f.apply(gen, func() {
		f.items = slices.DeleteFunc(f.items, func(n domain.Notification) bool {
			if n.ID != id {
				return false
			}
			if !n.Read {
				f.unread = max(0, f.unread-1)
			}
			return true
		})
	})
	return nil
}

func (f *Feed) generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// apply runs a local transformation in one locked step, unless the feed was
// stopped since gen was read.
func (f *Feed) apply(gen uint64, fn func()) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	fn()
	f.mu.Unlock()
	f.changed()
}

func (f *Feed) changed() {
	if f.onChange != nil {
		f.onChange(f.Snapshot())
	}
	select {
	case f.changes <- struct{}{}:
	default:
	}
}
