// internal/app/system/notify/notify.go

// Package notify holds the in-memory notification center. Notifications
// are short-lived: an undo prompt lives five seconds, a leader-change
// celebration four. Each carries an optional action that runs when the
// client acts on it (undo re-inserts the deleted entry).
package notify

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind classifies a notification for the client.
type Kind string

const (
	KindUndo        Kind = "undo"
	KindCelebration Kind = "celebration"
)

// Lifetimes per kind.
const (
	UndoTTL        = 5 * time.Second
	CelebrationTTL = 4 * time.Second
)

var ErrNotFound = errors.New("notification not found")

// Notification is one active item in the center. MemberID scopes it to
// a single member; empty means everyone sees it.
type Notification struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id,omitempty"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	action func(context.Context) error
	cancel func()
}

// TimerFunc schedules f after d and returns a cancel function.
// Production uses time.AfterFunc; tests inject their own to fire
// expiry deterministically.
type TimerFunc func(d time.Duration, f func()) (cancel func())

// Center tracks active notifications and expires them.
type Center struct {
	mu     sync.Mutex
	active map[string]*Notification
	timer  TimerFunc
	log    *zap.Logger
}

// Option configures a Center.
type Option func(*Center)

// WithTimer replaces the expiry scheduler.
func WithTimer(t TimerFunc) Option {
	return func(c *Center) { c.timer = t }
}

// NewCenter creates an empty notification center.
func NewCenter(logger *zap.Logger, opts ...Option) *Center {
	c := &Center{
		active: make(map[string]*Notification),
		log:    logger,
		timer: func(d time.Duration, f func()) func() {
			t := time.AfterFunc(d, f)
			return func() { t.Stop() }
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push adds a notification and schedules its expiry. The action, if
// non-nil, runs when the client acts on the notification before it
// expires.
func (c *Center) Push(memberID string, kind Kind, message string, action func(context.Context) error) Notification {
	n := &Notification{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
		action:    action,
	}

	ttl := CelebrationTTL
	if kind == KindUndo {
		ttl = UndoTTL
	}

	c.mu.Lock()
	c.active[n.ID] = n
	n.cancel = c.timer(ttl, func() { c.expire(n.ID) })
	c.mu.Unlock()

	c.log.Debug("notification pushed",
		zap.String("id", n.ID),
		zap.String("kind", string(kind)),
		zap.String("member_id", memberID))

	return *n
}

// Active returns the notifications visible to memberID, oldest first.
// Global notifications (empty MemberID) are included for everyone.
func (c *Center) Active(memberID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Notification
	for _, n := range c.active {
		if n.MemberID == "" || n.MemberID == memberID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes a notification without running its action.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	n, ok := c.active[id]
	if ok {
		delete(c.active, id)
	}
	c.mu.Unlock()

	if ok && n.cancel != nil {
		n.cancel()
	}
	return ok
}

// Act removes the notification and runs its action. Acting on an
// expired or unknown notification returns ErrNotFound; the window for
// an undo has simply closed.
func (c *Center) Act(ctx context.Context, id string) error {
	c.mu.Lock()
	n, ok := c.active[id]
	if ok {
		delete(c.active, id)
	}
	c.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if n.cancel != nil {
		n.cancel()
	}
	if n.action == nil {
		return nil
	}
	return n.action(ctx)
}

func (c *Center) expire(id string) {
	c.mu.Lock()
	_, ok := c.active[id]
	if ok {
		delete(c.active, id)
	}
	c.mu.Unlock()

	if ok {
		c.log.Debug("notification expired", zap.String("id", id))
	}
}
