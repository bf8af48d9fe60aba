package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingRewardTypeRole is the only pending reward type today. Role grants
// cannot be applied by this service, so they are queued for the Discord bot.
const PendingRewardTypeRole = "role"

// PendingReward is a reward that must be delivered asynchronously by the
// Discord bot. This service only inserts the record; the bot marks it
// processed once the role has been granted.
type PendingReward struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"userId" json:"userId"`
	Type        string             `bson:"type" json:"type"`
	RoleID      string             `bson:"roleId" json:"roleId"`
	Reason      string             `bson:"reason" json:"reason"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ProcessedAt *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}
