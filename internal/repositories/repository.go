package repositories

import (
	"context"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner runs a function inside a single storage transaction. Every write
// the function performs through the repositories joins that transaction via
// the context; if the function returns an error nothing is persisted.
//
// Concurrent transactions touching the same document are isolated by the
// storage layer: a conflicting writer aborts and retries against the
// committed state, so two racing redemptions of the same code can never both
// observe the pre-mutation document and both succeed.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	IncrementXP(ctx context.Context, discordID string, amount int) error
	SetLevel(ctx context.Context, discordID string, level int) error
	SetDailyRewardClaimed(ctx context.Context, discordID string, claimedAt time.Time) error
	Count(ctx context.Context) (int64, error)
}

// WalletRepository defines the interface for wallet data operations.
// Credit and Debit mutate the balance and append the ledger entry in a single
// update; both must be called inside an enclosing TxRunner transaction when
// co-dependent state (promo usage, bet records) changes alongside them.
type WalletRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	// Credit increments the balance and pushes the transaction, creating the
	// wallet document if absent.
	Credit(ctx context.Context, userID string, tx models.Transaction) error
	// Debit decrements the balance and pushes the transaction. The caller
	// checks the balance first, inside the same storage transaction.
	Debit(ctx context.Context, userID string, tx models.Transaction) error
	TopBalances(ctx context.Context, limit int) ([]*models.RichestEntry, error)
}

// PromoCodeRepository defines the interface for promo code operations
type PromoCodeRepository interface {
	Create(ctx context.Context, code *models.PromoCode) error
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
	FindAll(ctx context.Context, limit int) ([]*models.PromoCode, error)
	// AppendRedemption pushes userID onto redeemedBy and, when depleted is
	// true, marks the code REDEEMED in the same update.
	AppendRedemption(ctx context.Context, id primitive.ObjectID, userID string, depleted bool) error
	// UpdateStatus moves a code out of ACTIVE. The update is conditional on
	// the current status still being ACTIVE so terminal states never reverse.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// PendingRewardRepository defines the interface for queued role grants
type PendingRewardRepository interface {
	Create(ctx context.Context, reward *models.PendingReward) error
	FindUnprocessed(ctx context.Context) ([]*models.PendingReward, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID, processedAt time.Time) error
}

// BetRepository defines the interface for placed bet operations
type BetRepository interface {
	Create(ctx context.Context, bet *models.PlacedBet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PlacedBet, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.PlacedBet, error)
	// Settle moves an open bet to a terminal status. The update is
	// conditional on the bet still being open.
	Settle(ctx context.Context, id primitive.ObjectID, status string, settledAt time.Time) error
}

// UserStatsRepository maintains the per-user betting aggregates
type UserStatsRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserStats, error)
	IncrementPlaced(ctx context.Context, userID string, stake float64) error
	IncrementWon(ctx context.Context, userID string, winnings float64) error
	IncrementLost(ctx context.Context, userID string, stake float64) error
}

// MatchRepository provides access to fixtures for bet validation and sync
type MatchRepository interface {
	FindByIDs(ctx context.Context, ids []int) ([]*models.Match, error)
	Upsert(ctx context.Context, matches []*models.Match) error
}

// StoreRepository defines the interface for store catalogue and inventory
type StoreRepository interface {
	FindActiveItems(ctx context.Context) ([]*models.StoreItem, error)
	FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error)
	InsertInventory(ctx context.Context, item *models.UserInventoryItem) error
	FindInventoryByUserAndItem(ctx context.Context, userID string, itemID primitive.ObjectID) ([]*models.UserInventoryItem, error)
	FindInventoryByCode(ctx context.Context, redemptionCode string) (*models.UserInventoryItem, error)
	FindInventoryByUserID(ctx context.Context, userID string) ([]*models.UserInventoryItem, error)
}

// LevelConfigRepository stores the XP ladder as a single document
type LevelConfigRepository interface {
	Get(ctx context.Context) ([]models.LevelThreshold, error)
	Update(ctx context.Context, levels []models.LevelThreshold) error
}

// AdminUserRepository defines the interface for back-office accounts
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
