// internal/domain/models/entry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyBonusPoints is the fixed bonus for a member's first entry of a
// calendar day. Computed once at write time, never retroactively.
const DailyBonusPoints = 50

// PointEntry is one recorded instance of a member completing a task.
// Timestamp is event time (when the work happened), not insertion time.
//
// When TaskID == CustomTaskID, CustomTaskName and CustomTaskPoints must
// both be set and CustomTaskPoints takes precedence over any catalog
// lookup.
type PointEntry struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID         string             `bson:"member_id" json:"member_id"`
	TaskID           string             `bson:"task_id" json:"task_id"`
	Quantity         int                `bson:"quantity" json:"quantity"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
	DailyBonus       bool               `bson:"daily_bonus" json:"daily_bonus"`
	CustomTaskName   string             `bson:"custom_task_name,omitempty" json:"custom_task_name,omitempty"`
	CustomTaskPoints int                `bson:"custom_task_points,omitempty" json:"custom_task_points,omitempty"`
}

// IsCustom reports whether the entry references a one-off task rather
// than the catalog.
func (e PointEntry) IsCustom() bool { return e.TaskID == CustomTaskID }
