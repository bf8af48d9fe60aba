package models

// Level reward types.
const (
	LevelRewardNone  = "none"
	LevelRewardMoney = "money"
	LevelRewardRole  = "role"
)

// LevelThreshold is one rung of the XP ladder. Thresholds are stored ordered
// by level in a single configuration document.
type LevelThreshold struct {
	Level          int     `bson:"level" json:"level"`
	XP             int     `bson:"xp" json:"xp"`
	Name           string  `bson:"name" json:"name"`
	RewardType     string  `bson:"rewardType" json:"rewardType"`
	RewardAmount   float64 `bson:"rewardAmount,omitempty" json:"rewardAmount,omitempty"`
	RewardRoleID   string  `bson:"rewardRoleId,omitempty" json:"rewardRoleId,omitempty"`
	UnlocksFeature string  `bson:"unlocksFeature,omitempty" json:"unlocksFeature,omitempty"`
}

// UserLevel is the computed level view for a user.
type UserLevel struct {
	Level          int    `json:"level"`
	LevelName      string `json:"levelName"`
	XP             int    `json:"xp"`
	XPForNextLevel int    `json:"xpForNextLevel"`
	Progress       int    `json:"progress"`
}
