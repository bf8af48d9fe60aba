package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types. Values are the user-facing Portuguese labels stored in
// the wallet documents.
const (
	TransactionTypeDeposit    = "Depósito"
	TransactionTypeWithdrawal = "Saque"
	TransactionTypeBet        = "Aposta"
	TransactionTypePrize      = "Prêmio"
	TransactionTypeBonus      = "Bônus"
	TransactionTypeStore      = "Loja"
	TransactionTypeAdjustment = "Ajuste"
)

// Transaction statuses.
const (
	TransactionStatusCompleted = "Concluído"
	TransactionStatusPending   = "Pendente"
	TransactionStatusCancelled = "Cancelado"
)

// Transaction is a single entry in a wallet's ledger. Entries are write-once:
// they are appended inside the same storage transaction that moves the balance
// and never modified afterwards.
type Transaction struct {
	ID          string    `bson:"id" json:"id"`
	Type        string    `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
	Amount      float64   `bson:"amount" json:"amount"`
	Date        time.Time `bson:"date" json:"date"`
	Status      string    `bson:"status" json:"status"`
}

// Wallet holds a user's balance together with the embedded transaction log,
// newest first. The balance always equals the sum of the transaction amounts.
type Wallet struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"userId" json:"userId"`
	Balance      float64            `bson:"balance" json:"balance"`
	Transactions []Transaction      `bson:"transactions" json:"transactions"`
}

// RichestEntry is one row of the wallet balance ranking.
type RichestEntry struct {
	Rank      int     `bson:"-" json:"rank"`
	DiscordID string  `bson:"discordId" json:"discordId"`
	Name      string  `bson:"name" json:"name"`
	Avatar    string  `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Balance   float64 `bson:"balance" json:"balance"`
	IsVip     bool    `bson:"isVip" json:"isVip"`
}
