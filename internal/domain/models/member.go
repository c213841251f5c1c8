// internal/domain/models/member.go
package models

import "time"

// TeamMember is a person who can log points. The _id is the member's
// email address: it is the stable identity Google hands us at sign-in,
// so a member keeps their history across sessions and devices.
//
// Color and Face are avatar customization: Color is a hex accent from a
// fixed palette, Face an index into a fixed set of avatar expressions.
// Both are assigned by the allocator on first sign-in and changed only
// through profile customization. Members are never deleted.
type TeamMember struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Color  string `bson:"color,omitempty" json:"color,omitempty"`
	Face   int    `bson:"face" json:"face"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
