package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts a team member directly, bypassing the sign-in
// allocator.
func (f *Fixtures) CreateMember(ctx context.Context, email, name, color string, face int) models.TeamMember {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.TeamMember{
		ID:        email,
		Name:      name,
		Color:     color,
		Face:      face,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture: create member %s: %v", email, err)
	}
	return m
}

// CreateEntry inserts a point entry directly with the given bonus flag,
// bypassing the store's bonus decision.
func (f *Fixtures) CreateEntry(ctx context.Context, member, task string, qty int, ts time.Time, bonus bool) models.PointEntry {
	f.t.Helper()

	e := models.PointEntry{
		ID:         primitive.NewObjectIDFromTimestamp(ts),
		MemberID:   member,
		TaskID:     task,
		Quantity:   qty,
		Timestamp:  ts.UTC(),
		DailyBonus: bonus,
	}
	if _, err := f.db.Collection("entries").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("fixture: create entry for %s: %v", member, err)
	}
	return e
}
