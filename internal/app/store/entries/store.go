// internal/app/store/entries/store.go
package entries

import (
	"context"
	"errors"
	"time"

	"github.com/quangoinc/qscore/internal/app/system/htmlsanitize"
	"github.com/quangoinc/qscore/internal/app/system/normalize"
	"github.com/quangoinc/qscore/internal/domain/catalog"
	"github.com/quangoinc/qscore/internal/domain/models"
	"github.com/quangoinc/qscore/internal/domain/points"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBadQuantity  = errors.New("quantity must be at least 1")
	ErrUnknownTask  = errors.New("task is not in the catalog")
	ErrCustomFields = errors.New("custom entries need a name and positive points")
)

type Store struct {
	c   *mongo.Collection
	loc *time.Location
}

// New creates the entries store. loc is the team's timezone; calendar
// day boundaries for the daily bonus are computed in it.
func New(db *mongo.Database, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{c: db.Collection("entries"), loc: loc}
}

// List returns all entries, newest event first.
func (s *Store) List(ctx context.Context) ([]models.PointEntry, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PointEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one entry. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PointEntry, error) {
	var e models.PointEntry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.PointEntry{}, err
	}
	return e, nil
}

// Insert validates and stores a new entry, deciding the daily bonus:
// a member's first entry of a calendar day (by event time) carries it.
// The check-then-insert is not atomic; two simultaneous first entries
// can both earn the bonus, which the team tolerates.
func (s *Store) Insert(ctx context.Context, e models.PointEntry) (models.PointEntry, error) {
	if err := validate(&e); err != nil {
		return models.PointEntry{}, err
	}

	local := e.Timestamp.In(s.loc)
	dayStart := points.DayStart(local)
	dayEnd := points.DayEnd(local)
	n, err := s.c.CountDocuments(ctx, bson.M{
		"member_id": e.MemberID,
		"timestamp": bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return models.PointEntry{}, err
	}
	e.DailyBonus = n == 0

	// Time-derived ID keeps _id order aligned with event time.
	e.ID = primitive.NewObjectIDFromTimestamp(e.Timestamp)

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.PointEntry{}, err
	}
	return e, nil
}

// Restore re-inserts a snapshot of a deleted entry under a fresh ID.
// The daily-bonus flag and timestamp are kept as recorded; restoring
// must not re-run the bonus decision.
func (s *Store) Restore(ctx context.Context, e models.PointEntry) (models.PointEntry, error) {
	e.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.PointEntry{}, err
	}
	return e, nil
}

// Update holds the editable fields of an entry. Nil means unchanged.
type Update struct {
	TaskID           *string
	Quantity         *int
	Timestamp        *time.Time
	CustomTaskName   *string
	CustomTaskPoints *int
}

// UpdateEntry applies a partial edit to memberID's entry. The daily
// bonus stays as originally decided; edits never move it between
// entries. Returns mongo.ErrNoDocuments when the entry does not exist
// or belongs to another member.
func (s *Store) UpdateEntry(ctx context.Context, id primitive.ObjectID, memberID string, upd Update) (models.PointEntry, error) {
	set := bson.M{}
	if upd.TaskID != nil {
		if _, ok := catalog.Lookup(*upd.TaskID); !ok && *upd.TaskID != models.CustomTaskID {
			return models.PointEntry{}, ErrUnknownTask
		}
		set["task_id"] = *upd.TaskID
	}
	if upd.Quantity != nil {
		if *upd.Quantity < 1 {
			return models.PointEntry{}, ErrBadQuantity
		}
		set["quantity"] = *upd.Quantity
	}
	if upd.Timestamp != nil {
		set["timestamp"] = upd.Timestamp.UTC()
	}
	if upd.CustomTaskName != nil {
		name := normalize.TaskName(htmlsanitize.Plain(*upd.CustomTaskName))
		if name == "" {
			return models.PointEntry{}, ErrCustomFields
		}
		set["custom_task_name"] = name
	}
	if upd.CustomTaskPoints != nil {
		if *upd.CustomTaskPoints < 1 {
			return models.PointEntry{}, ErrCustomFields
		}
		set["custom_task_points"] = *upd.CustomTaskPoints
	}

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "member_id": memberID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var e models.PointEntry
	if err := res.Decode(&e); err != nil {
		return models.PointEntry{}, err
	}
	return e, nil
}

// Delete removes an entry. Returns mongo.ErrNoDocuments if nothing
// matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func validate(e *models.PointEntry) error {
	if e.Quantity < 1 {
		return ErrBadQuantity
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC()

	if e.IsCustom() {
		e.CustomTaskName = normalize.TaskName(htmlsanitize.Plain(e.CustomTaskName))
		if e.CustomTaskName == "" || e.CustomTaskPoints < 1 {
			return ErrCustomFields
		}
		return nil
	}

	if _, ok := catalog.Lookup(e.TaskID); !ok {
		return ErrUnknownTask
	}
	// Catalog entries never carry custom fields.
	e.CustomTaskName = ""
	e.CustomTaskPoints = 0
	return nil
}
