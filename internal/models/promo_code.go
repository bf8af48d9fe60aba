package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promo code reward types.
const (
	PromoCodeTypeMoney = "MONEY"
	PromoCodeTypeXP    = "XP"
	PromoCodeTypeRole  = "ROLE"
	PromoCodeTypeDaily = "DAILY"
)

// Promo code statuses. A code only ever moves from ACTIVE to one of the
// terminal states; terminal states are never reversed.
const (
	PromoCodeStatusActive   = "ACTIVE"
	PromoCodeStatusRedeemed = "REDEEMED"
	PromoCodeStatusExpired  = "EXPIRED"
	PromoCodeStatusRevoked  = "REVOKED"
)

// PromoCode is a redeemable reward source. The code string is stored
// uppercase and is unique across the collection. MaxUses nil means unlimited.
type PromoCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code        string             `bson:"code" json:"code"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Value       string             `bson:"value" json:"value"` // amount for MONEY/XP/DAILY, role ID for ROLE
	Status      string             `bson:"status" json:"status"`
	MaxUses     *int               `bson:"maxUses" json:"maxUses"`
	RedeemedBy  []string           `bson:"redeemedBy" json:"redeemedBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt   *time.Time         `bson:"expiresAt" json:"expiresAt"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"` // admin email or "SYSTEM"
}

// CreatePromoCodeRequest is the admin payload for creating a promo code.
type CreatePromoCodeRequest struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=MONEY XP ROLE DAILY"`
	Description string     `json:"description" binding:"required"`
	Value       string     `json:"value" binding:"required"`
	MaxUses     *int       `json:"maxUses"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}
