package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app message shown to a user. Written once as a side
// effect of an operation; only the read flag is ever mutated afterwards.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Read        bool               `bson:"read" json:"read"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	IsPriority  bool               `bson:"isPriority,omitempty" json:"isPriority,omitempty"`
}
