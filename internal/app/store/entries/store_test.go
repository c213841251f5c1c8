package entries_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quangoinc/qscore/internal/app/store/entries"
	"github.com/quangoinc/qscore/internal/domain/models"
	"github.com/quangoinc/qscore/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestStore(t *testing.T) *entries.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return entries.New(db, time.UTC)
}

func newEntry(member, task string, qty int, ts time.Time) models.PointEntry {
	return models.PointEntry{
		MemberID:  member,
		TaskID:    task,
		Quantity:  qty,
		Timestamp: ts,
	}
}

func TestInsert_FirstOfDayEarnsBonus(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ts := time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)

	first, err := store.Insert(ctx, newEntry("alex@quangoinc.com", "1", 1, ts))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !first.DailyBonus {
		t.Error("first entry of the day must carry the bonus")
	}

	second, err := store.Insert(ctx, newEntry("alex@quangoinc.com", "2", 1, ts.Add(time.Hour)))
	if err != nil {
		t.Fatalf("second Insert failed: %v", err)
	}
	if second.DailyBonus {
		t.Error("second entry of the same day must not carry the bonus")
	}
}

func TestInsert_BonusIsPerMember(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ts := time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)

	if _, err := store.Insert(ctx, newEntry("alex@quangoinc.com", "1", 1, ts)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	other, err := store.Insert(ctx, newEntry("jordan@quangoinc.com", "1", 1, ts))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !other.DailyBonus {
		t.Error("another member's first entry of the day earns its own bonus")
	}
}

func TestInsert_BonusResetsNextDay(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day1 := time.Date(2026, time.January, 14, 23, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.January, 15, 1, 0, 0, 0, time.UTC)

	if _, err := store.Insert(ctx, newEntry("alex@quangoinc.com", "1", 1, day1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	next, err := store.Insert(ctx, newEntry("alex@quangoinc.com", "1", 1, day2))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !next.DailyBonus {
		t.Error("first entry of a new day earns the bonus")
	}
}

func TestInsert_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ts := time.Now()

	if _, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 0, ts)); !errors.Is(err, entries.ErrBadQuantity) {
		t.Errorf("zero quantity: err = %v, want ErrBadQuantity", err)
	}
	if _, err := store.Insert(ctx, newEntry("a@quangoinc.com", "99", 1, ts)); !errors.Is(err, entries.ErrUnknownTask) {
		t.Errorf("unknown task: err = %v, want ErrUnknownTask", err)
	}

	custom := newEntry("a@quangoinc.com", models.CustomTaskID, 1, ts)
	if _, err := store.Insert(ctx, custom); !errors.Is(err, entries.ErrCustomFields) {
		t.Errorf("custom without fields: err = %v, want ErrCustomFields", err)
	}
}

func TestInsert_CustomEntrySanitized(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := newEntry("a@quangoinc.com", models.CustomTaskID, 1, time.Now())
	e.CustomTaskName = "  <b>Helped</b>   client  "
	e.CustomTaskPoints = 20

	got, err := store.Insert(ctx, e)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got.CustomTaskName != "Helped client" {
		t.Errorf("CustomTaskName = %q, want sanitized and collapsed", got.CustomTaskName)
	}
}

func TestList_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2026, time.January, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 1, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("entries not sorted newest first at %d", i)
		}
	}
}

func TestUpdateEntry_PartialEdit(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 1, time.Now()))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	qty := 3
	got, err := store.UpdateEntry(ctx, e.ID, "a@quangoinc.com", entries.Update{Quantity: &qty})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if got.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", got.Quantity)
	}
	if got.TaskID != "1" {
		t.Errorf("TaskID changed to %q", got.TaskID)
	}
	if got.DailyBonus != e.DailyBonus {
		t.Error("edit must not change the daily-bonus flag")
	}
}

func TestUpdateEntry_OtherMembersEntry(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 1, time.Now()))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	qty := 3
	_, err = store.UpdateEntry(ctx, e.ID, "b@quangoinc.com", entries.Update{Quantity: &qty})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 1, time.Now()))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, e.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("second delete: err = %v, want mongo.ErrNoDocuments", err)
	}
	if _, err := store.GetByID(ctx, e.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID after delete: err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestRestore_KeepsSnapshotFields(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Insert(ctx, newEntry("a@quangoinc.com", "1", 1, time.Now()))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	restored, err := store.Restore(ctx, e)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.ID == e.ID {
		t.Error("Restore must assign a fresh ID")
	}
	if restored.DailyBonus != e.DailyBonus {
		t.Error("Restore must keep the recorded bonus flag")
	}
	if !restored.Timestamp.Equal(e.Timestamp) {
		t.Error("Restore must keep the original timestamp")
	}
}

func TestGetByID_Missing(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want mongo.ErrNoDocuments", err)
	}
}
