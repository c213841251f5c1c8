// internal/app/system/realtime/hub.go

// Package realtime fans database changes out to connected clients.
// The hub watches MongoDB change streams when the deployment supports
// them (replica sets); otherwise it degrades to recomputing on local
// writes only, and clients still converge on refresh.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/quangoinc/qscore/internal/app/system/notify"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"github.com/quangoinc/qscore/internal/domain/catalog"
	"github.com/quangoinc/qscore/internal/domain/models"
	"github.com/quangoinc/qscore/internal/domain/points"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Event is one server-sent update.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Event types pushed to clients.
const (
	EventEntriesChanged = "entries_changed"
	EventMembersChanged = "members_changed"
	EventLeaderChange   = "leader_change"
)

// EntryLister loads the full entries ledger.
type EntryLister interface {
	List(ctx context.Context) ([]models.PointEntry, error)
}

// MemberLister loads the member directory.
type MemberLister interface {
	List(ctx context.Context) ([]models.TeamMember, error)
}

// Hub tracks subscribers and the current weekly leader.
type Hub struct {
	db      *mongo.Database
	entries EntryLister
	members MemberLister
	center  *notify.Center
	loc     *time.Location
	log     *zap.Logger

	mu      sync.Mutex
	subs    map[chan Event]struct{}
	tracker points.LeaderTracker

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewHub creates a Hub. db may be nil in tests; Start then skips the
// change-stream pump.
func NewHub(db *mongo.Database, entryLister EntryLister, memberLister MemberLister, center *notify.Center, loc *time.Location, logger *zap.Logger) *Hub {
	if loc == nil {
		loc = time.UTC
	}
	return &Hub{
		db:      db,
		entries: entryLister,
		members: memberLister,
		center:  center,
		loc:     loc,
		log:     logger,
		subs:    make(map[chan Event]struct{}),
		stopCh:  make(chan struct{}),
	}
}

// Start seeds the leader tracker and begins the change-stream pump.
// A deployment without change streams logs a warning and runs without
// cross-instance push.
func (h *Hub) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	h.Recompute(ctx)
	cancel()

	if h.db == nil {
		return
	}

	cs, err := h.db.Watch(context.Background(),
		mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"ns.coll": bson.M{"$in": bson.A{"entries", "users"}}}}},
		},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		h.log.Warn("change streams unavailable, realtime push degraded to local writes", zap.Error(err))
		return
	}

	h.wg.Add(1)
	go h.pump(cs)
	h.log.Info("realtime hub started")
}

// Stop closes the pump and drops all subscribers.
func (h *Hub) Stop() {
	close(h.stopCh)
	h.wg.Wait()

	h.mu.Lock()
	for ch := range h.subs {
		close(ch)
		delete(h.subs, ch)
	}
	h.mu.Unlock()
	h.log.Info("realtime hub stopped")
}

// Subscribe registers a client. The returned cancel must be called when
// the client disconnects.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Broadcast sends ev to every subscriber. Slow clients are skipped
// rather than blocking the hub.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// EntriesChanged is called after any local entry write: it recomputes
// the leaderboard state and notifies clients.
func (h *Hub) EntriesChanged(ctx context.Context) {
	h.Recompute(ctx)
	h.Broadcast(Event{Type: EventEntriesChanged})
}

// MembersChanged is called after a member profile write.
func (h *Hub) MembersChanged() {
	h.Broadcast(Event{Type: EventMembersChanged})
}

// Recompute reloads the ledger, observes the current weekly leader, and
// fires a celebration when the lead changed hands. Load failures are
// logged and skipped; the next write reconverges.
func (h *Hub) Recompute(ctx context.Context) {
	entries, err := h.entries.List(ctx)
	if err != nil {
		h.log.Warn("recompute: load entries failed", zap.Error(err))
		return
	}
	members, err := h.members.List(ctx)
	if err != nil {
		h.log.Warn("recompute: load members failed", zap.Error(err))
		return
	}

	now := time.Now().In(h.loc)
	totals := points.Totals(entries, catalog.Tasks(), members, points.WindowWeek(points.WeekStart(now)))

	h.mu.Lock()
	leader, fired := h.tracker.Observe(totals)
	h.mu.Unlock()

	if !fired {
		return
	}

	h.log.Info("weekly leader changed",
		zap.String("member_id", leader.Member.ID),
		zap.Int("points", leader.Points))

	if h.center != nil {
		name := leader.Member.Name
		if name == "" {
			name = leader.Member.ID
		}
		h.center.Push("", notify.KindCelebration, name+" took the lead!", nil)
	}
	h.Broadcast(Event{Type: EventLeaderChange, Payload: map[string]any{
		"member_id": leader.Member.ID,
		"points":    leader.Points,
	}})
}

func (h *Hub) pump(cs *mongo.ChangeStream) {
	defer h.wg.Done()
	defer cs.Close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-h.stopCh
		cancel()
	}()

	for cs.Next(ctx) {
		var change struct {
			NS struct {
				Coll string `bson:"coll"`
			} `bson:"ns"`
		}
		if err := cs.Decode(&change); err != nil {
			h.log.Warn("decode change event", zap.Error(err))
			continue
		}

		rctx, rcancel := context.WithTimeout(context.Background(), timeouts.Medium())
		switch change.NS.Coll {
		case "entries":
			h.Recompute(rctx)
			h.Broadcast(Event{Type: EventEntriesChanged})
		case "users":
			h.Broadcast(Event{Type: EventMembersChanged})
		}
		rcancel()
	}

	if err := cs.Err(); err != nil && ctx.Err() == nil {
		h.log.Error("change stream closed", zap.Error(err))
	}
}
