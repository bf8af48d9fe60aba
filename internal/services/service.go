package services

import (
	"context"

	"github.com/timaocord/wallet-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardService defines the interface for reward-source operations: promo
// code redemption, the daily claim, the pending-reward feed for the Discord
// bot, and the admin lifecycle of promo codes.
type RewardService interface {
	// RedeemCode validates and redeems a promo code for the user, applying
	// the reward effect and writing a notification in one atomic unit.
	// Returns the success message shown to the user.
	RedeemCode(ctx context.Context, userID, code string) (string, error)

	// ClaimDaily credits the fixed daily reward once per UTC day.
	ClaimDaily(ctx context.Context, userID string) (string, error)

	// PendingRewards lists queued role grants awaiting the Discord bot.
	PendingRewards(ctx context.Context) ([]*models.PendingReward, error)

	// MarkRewardProcessed records the bot's delivery acknowledgement.
	MarkRewardProcessed(ctx context.Context, id primitive.ObjectID) error

	// CreateCode creates a promo code (admin).
	CreateCode(ctx context.Context, req *models.CreatePromoCodeRequest, createdBy string) (*models.PromoCode, error)

	// ListCodes lists promo codes newest-first (admin).
	ListCodes(ctx context.Context) ([]*models.PromoCode, error)

	// RevokeCode moves an ACTIVE code to REVOKED (admin).
	RevokeCode(ctx context.Context, id primitive.ObjectID) error
}

// WalletService defines the interface for wallet reads
type WalletService interface {
	// GetBalanceAndHistory returns the wallet with its ledger newest-first.
	// Users without a wallet yet get an empty wallet, not an error.
	GetBalanceAndHistory(ctx context.Context, userID string) (*models.Wallet, error)

	// TopBalances returns the balance ranking.
	TopBalances(ctx context.Context) ([]*models.RichestEntry, error)
}

// BetService defines the interface for bet placement and settlement
type BetService interface {
	PlaceBet(ctx context.Context, userID string, selections []models.BetSelection, stake float64) (*models.PlaceBetResult, error)
	GetUserBets(ctx context.Context, userID string) ([]*models.PlacedBet, error)

	// SettleBet resolves an open bet. A win credits the potential winnings
	// as a Prize transaction in the same atomic unit.
	SettleBet(ctx context.Context, betID primitive.ObjectID, won bool) error
}

// StoreService defines the interface for the community store
type StoreService interface {
	ListItems(ctx context.Context) ([]*models.StoreItem, error)
	Purchase(ctx context.Context, userID string, itemID primitive.ObjectID) (*models.PurchaseResult, error)
	GetInventory(ctx context.Context, userID string) ([]*models.UserInventoryItem, error)
}

// LevelService defines the interface for the XP ladder
type LevelService interface {
	GetLevelConfig(ctx context.Context) ([]models.LevelThreshold, error)
	UpdateLevelConfig(ctx context.Context, levels []models.LevelThreshold) error
	GetUserLevel(ctx context.Context, userID string) (*models.UserLevel, error)
}

// NotificationService defines the interface for in-app notifications
type NotificationService interface {
	GetForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// AuthService defines the interface for back-office authentication
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAdmin(ctx context.Context, name, email, password, role string) (*models.AdminUser, error)
}
