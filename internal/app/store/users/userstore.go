package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/quangoinc/qscore/internal/app/system/normalize"
	"github.com/quangoinc/qscore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrBadColor is returned when a profile update names a color
	// outside the palette.
	ErrBadColor = errors.New("color must be one of the palette values")
	// ErrBadFace is returned for an unknown face variant index.
	ErrBadFace = errors.New("face must be a known variant index")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// List returns every member in join order. Members are never deleted,
// so this is the full directory.
func (s *Store) List(ctx context.Context) ([]models.TeamMember, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetByID loads a member by email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, email string) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := s.c.FindOne(ctx, bson.M{"_id": normalize.Email(email)}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertOnSignIn records a successful Google sign-in. A first sign-in
// creates the member with an allocated color and face; later sign-ins
// only refresh the display name.
func (s *Store) UpsertOnSignIn(ctx context.Context, email, name string) (*models.TeamMember, error) {
	email = normalize.Email(email)
	name = normalize.Name(name)
	now := time.Now().UTC()

	var existing models.TeamMember
	err := s.c.FindOne(ctx, bson.M{"_id": email}).Decode(&existing)
	if err == nil {
		if name != "" && name != existing.Name {
			_, err = s.c.UpdateOne(ctx,
				bson.M{"_id": email},
				bson.M{"$set": bson.M{"name": name, "updated_at": now}})
			if err != nil {
				return nil, err
			}
			existing.Name = name
			existing.UpdatedAt = now
		}
		return &existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	members, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	color, face := PickColorFace(members)

	m := models.TeamMember{
		ID:        email,
		Name:      name,
		Color:     color,
		Face:      face,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		// Two first sign-ins can race; the loser reads the winner's doc.
		if wafflemongo.IsDup(err) {
			return s.GetByID(ctx, email)
		}
		return nil, err
	}
	return &m, nil
}

// UpdateProfile changes a member's avatar color and face.
func (s *Store) UpdateProfile(ctx context.Context, email, color string, face int) (*models.TeamMember, error) {
	if !ValidColor(color) {
		return nil, ErrBadColor
	}
	if !ValidFace(face) {
		return nil, ErrBadFace
	}

	email = normalize.Email(email)
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": email},
		bson.M{"$set": bson.M{"color": color, "face": face, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var m models.TeamMember
	if err := res.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
