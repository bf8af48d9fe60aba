package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bet statuses.
const (
	BetStatusOpen      = "Em Aberto"
	BetStatusWon       = "Ganha"
	BetStatusLost      = "Perdida"
	BetStatusCancelled = "Cancelada"
)

// BetSelection is one pick inside a bet slip.
type BetSelection struct {
	MatchID    int    `bson:"matchId" json:"matchId" binding:"required"`
	MatchTime  string `bson:"matchTime" json:"matchTime"`
	TeamA      string `bson:"teamA" json:"teamA" binding:"required"`
	TeamB      string `bson:"teamB" json:"teamB" binding:"required"`
	League     string `bson:"league" json:"league"`
	MarketName string `bson:"marketName" json:"marketName" binding:"required"`
	Selection  string `bson:"selection" json:"selection" binding:"required"`
	OddValue   string `bson:"oddValue" json:"oddValue" binding:"required"`
}

// PlacedBet is a settled or open bet slip. The stake is debited from the
// wallet in the same storage transaction that inserts the bet.
type PlacedBet struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID            string             `bson:"userId" json:"userId"`
	Selections        []BetSelection     `bson:"bets" json:"bets"`
	Stake             float64            `bson:"stake" json:"stake"`
	TotalOdds         float64            `bson:"totalOdds" json:"totalOdds"`
	PotentialWinnings float64            `bson:"potentialWinnings" json:"potentialWinnings"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	SettledAt         *time.Time         `bson:"settledAt,omitempty" json:"settledAt,omitempty"`
}

// UserStats aggregates a user's betting activity. Maintained in the same
// transaction as the bet and wallet writes it derives from.
type UserStats struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	TotalBets     int                `bson:"totalBets" json:"totalBets"`
	TotalWagered  float64            `bson:"totalWagered" json:"totalWagered"`
	TotalWinnings float64            `bson:"totalWinnings" json:"totalWinnings"`
	TotalLosses   float64            `bson:"totalLosses" json:"totalLosses"`
	BetsWon       int                `bson:"betsWon" json:"betsWon"`
	BetsLost      int                `bson:"betsLost" json:"betsLost"`
}

// PlaceBetRequest is the payload for placing a bet.
type PlaceBetRequest struct {
	Selections []BetSelection `json:"bets" binding:"required,min=1,dive"`
	Stake      float64        `json:"stake" binding:"required,gt=0"`
}

// PlaceBetResult is returned to the caller after a successful placement so
// the UI can refresh its cached balance display.
type PlaceBetResult struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"newBalance,omitempty"`
}
