package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store item types.
const (
	StoreItemTypeRole      = "ROLE"
	StoreItemTypeXPBoost   = "XP_BOOST"
	StoreItemTypeAdRemoval = "AD_REMOVAL"
)

// Store item durations.
const (
	StoreItemDurationPermanent = "PERMANENT"
	StoreItemDurationMonthly   = "MONTHLY"
)

// StoreItem is a purchasable item in the community store.
type StoreItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	Type           string             `bson:"type" json:"type"`
	Duration       string             `bson:"duration,omitempty" json:"duration,omitempty"`
	DurationInDays int                `bson:"durationInDays,omitempty" json:"durationInDays,omitempty"`
	RoleID         string             `bson:"roleId,omitempty" json:"roleId,omitempty"`
	XPAmount       int                `bson:"xpAmount,omitempty" json:"xpAmount,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserInventoryItem records a purchase. Role items carry a redemption code
// the user hands to the Discord bot; directly applied items are marked
// redeemed at purchase time.
type UserInventoryItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         string             `bson:"userId" json:"userId"`
	ItemID         primitive.ObjectID `bson:"itemId" json:"itemId"`
	ItemName       string             `bson:"itemName" json:"itemName"`
	ItemType       string             `bson:"itemType" json:"itemType"`
	ItemDuration   string             `bson:"itemDuration,omitempty" json:"itemDuration,omitempty"`
	PricePaid      float64            `bson:"pricePaid" json:"pricePaid"`
	RedemptionCode string             `bson:"redemptionCode" json:"redemptionCode"`
	IsRedeemed     bool               `bson:"isRedeemed" json:"isRedeemed"`
	RedeemedAt     *time.Time         `bson:"redeemedAt,omitempty" json:"redeemedAt,omitempty"`
	ExpiresAt      *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	PurchasedAt    time.Time          `bson:"purchasedAt" json:"purchasedAt"`
}

// PurchaseResult is the outcome of a store purchase.
type PurchaseResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RedemptionCode string `json:"redemptionCode,omitempty"`
}
