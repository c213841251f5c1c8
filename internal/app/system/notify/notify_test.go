package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quangoinc/qscore/internal/app/system/notify"
	"go.uber.org/zap"
)

// manualTimer collects scheduled expirations so tests can fire them
// deterministically.
type manualTimer struct {
	scheduled []scheduledExpiry
}

type scheduledExpiry struct {
	d         time.Duration
	fire      func()
	cancelled bool
}

func (m *manualTimer) timerFunc(d time.Duration, f func()) func() {
	idx := len(m.scheduled)
	m.scheduled = append(m.scheduled, scheduledExpiry{d: d, fire: f})
	return func() { m.scheduled[idx].cancelled = true }
}

func newTestCenter(t *testing.T) (*notify.Center, *manualTimer) {
	t.Helper()
	mt := &manualTimer{}
	return notify.NewCenter(zap.NewNop(), notify.WithTimer(mt.timerFunc)), mt
}

func TestPush_VisibleToOwner(t *testing.T) {
	c, _ := newTestCenter(t)

	n := c.Push("alex@quangoinc.com", notify.KindUndo, "Entry deleted", nil)

	active := c.Active("alex@quangoinc.com")
	if len(active) != 1 {
		t.Fatalf("got %d active, want 1", len(active))
	}
	if active[0].ID != n.ID {
		t.Errorf("active ID = %q, want %q", active[0].ID, n.ID)
	}
}

func TestPush_ScopedToMember(t *testing.T) {
	c, _ := newTestCenter(t)

	c.Push("alex@quangoinc.com", notify.KindUndo, "Entry deleted", nil)

	if active := c.Active("jordan@quangoinc.com"); len(active) != 0 {
		t.Errorf("jordan sees %d notifications, want 0", len(active))
	}
}

func TestPush_GlobalVisibleToEveryone(t *testing.T) {
	c, _ := newTestCenter(t)

	c.Push("", notify.KindCelebration, "Alex took the lead!", nil)

	if active := c.Active("jordan@quangoinc.com"); len(active) != 1 {
		t.Errorf("jordan sees %d notifications, want 1", len(active))
	}
	if active := c.Active("alex@quangoinc.com"); len(active) != 1 {
		t.Errorf("alex sees %d notifications, want 1", len(active))
	}
}

func TestPush_SchedulesExpiryByKind(t *testing.T) {
	c, mt := newTestCenter(t)

	c.Push("a@quangoinc.com", notify.KindUndo, "undo", nil)
	c.Push("", notify.KindCelebration, "celebrate", nil)

	if len(mt.scheduled) != 2 {
		t.Fatalf("got %d scheduled timers, want 2", len(mt.scheduled))
	}
	if mt.scheduled[0].d != notify.UndoTTL {
		t.Errorf("undo TTL = %v, want %v", mt.scheduled[0].d, notify.UndoTTL)
	}
	if mt.scheduled[1].d != notify.CelebrationTTL {
		t.Errorf("celebration TTL = %v, want %v", mt.scheduled[1].d, notify.CelebrationTTL)
	}
}

func TestExpiry_RemovesNotification(t *testing.T) {
	c, mt := newTestCenter(t)

	c.Push("a@quangoinc.com", notify.KindUndo, "undo", nil)
	mt.scheduled[0].fire()

	if active := c.Active("a@quangoinc.com"); len(active) != 0 {
		t.Errorf("got %d active after expiry, want 0", len(active))
	}
}

func TestDismiss_CancelsTimerAndSkipsAction(t *testing.T) {
	c, mt := newTestCenter(t)

	ran := false
	n := c.Push("a@quangoinc.com", notify.KindUndo, "undo", func(context.Context) error {
		ran = true
		return nil
	})

	if !c.Dismiss(n.ID) {
		t.Fatal("Dismiss returned false for active notification")
	}
	if !mt.scheduled[0].cancelled {
		t.Error("expected expiry timer to be cancelled")
	}
	if ran {
		t.Error("dismiss must not run the action")
	}
	if c.Dismiss(n.ID) {
		t.Error("second Dismiss should return false")
	}
}

func TestAct_RunsActionOnce(t *testing.T) {
	c, _ := newTestCenter(t)

	calls := 0
	n := c.Push("a@quangoinc.com", notify.KindUndo, "undo", func(context.Context) error {
		calls++
		return nil
	})

	if err := c.Act(context.Background(), n.ID); err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("action ran %d times, want 1", calls)
	}

	// The window is closed after the first act.
	if err := c.Act(context.Background(), n.ID); !errors.Is(err, notify.ErrNotFound) {
		t.Errorf("second Act error = %v, want ErrNotFound", err)
	}
}

func TestAct_AfterExpiry_ReturnsNotFound(t *testing.T) {
	c, mt := newTestCenter(t)

	n := c.Push("a@quangoinc.com", notify.KindUndo, "undo", func(context.Context) error { return nil })
	mt.scheduled[0].fire()

	if err := c.Act(context.Background(), n.ID); !errors.Is(err, notify.ErrNotFound) {
		t.Errorf("Act after expiry = %v, want ErrNotFound", err)
	}
}

func TestAct_PropagatesActionError(t *testing.T) {
	c, _ := newTestCenter(t)

	want := errors.New("insert failed")
	n := c.Push("a@quangoinc.com", notify.KindUndo, "undo", func(context.Context) error { return want })

	if err := c.Act(context.Background(), n.ID); !errors.Is(err, want) {
		t.Errorf("Act error = %v, want %v", err, want)
	}
}

func TestActive_OldestFirst(t *testing.T) {
	c, _ := newTestCenter(t)

	first := c.Push("", notify.KindCelebration, "first", nil)
	second := c.Push("", notify.KindCelebration, "second", nil)

	active := c.Active("anyone@quangoinc.com")
	if len(active) != 2 {
		t.Fatalf("got %d active, want 2", len(active))
	}
	// CreatedAt may collide at clock resolution; order must still be stable.
	ids := map[string]bool{active[0].ID: true, active[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("active set missing pushed notifications")
	}
}
