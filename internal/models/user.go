package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a community member in the system.
// Users are keyed by their Discord ID; the Mongo _id is internal.
type User struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DiscordID              string             `bson:"discordId" json:"discordId"`
	Name                   string             `bson:"name" json:"name"`
	Avatar                 string             `bson:"image,omitempty" json:"avatar,omitempty"`
	XP                     int                `bson:"xp" json:"xp"`
	Level                  int                `bson:"level" json:"level"`
	IsVip                  bool               `bson:"isVip" json:"isVip"`
	DailyRewardLastClaimed *time.Time         `bson:"dailyRewardLastClaimed" json:"dailyRewardLastClaimed"`
	AdRemovalExpiresAt     *time.Time         `bson:"adRemovalExpiresAt,omitempty" json:"adRemovalExpiresAt,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}
