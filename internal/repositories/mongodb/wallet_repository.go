package mongodb

import (
	"context"
	"errors"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure WalletRepository implements the interface
var _ repositories.WalletRepository = (*WalletRepository)(nil)

// WalletRepository handles MongoDB operations for Wallet
type WalletRepository struct {
	collection *mongo.Collection
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *mongo.Database) *WalletRepository {
	return &WalletRepository{
		collection: db.Collection("wallets"),
	}
}

// FindByUserID finds a wallet by user ID
func (r *WalletRepository) FindByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&wallet)
	if err != nil {
		return nil, translateErr(err)
	}
	return &wallet, nil
}

// Credit atomically increments the balance and pushes the transaction onto
// the ledger, keeping it sorted newest-first. Creates the wallet if absent.
func (r *WalletRepository) Credit(ctx context.Context, userID string, tx models.Transaction) error {
	if tx.Amount <= 0 {
		return errors.New("credit amount must be positive")
	}
	return r.apply(ctx, userID, tx, true)
}

// Debit atomically decrements the balance and pushes the transaction. The
// caller is responsible for the balance check, inside the same storage
// transaction this call joins.
func (r *WalletRepository) Debit(ctx context.Context, userID string, tx models.Transaction) error {
	if tx.Amount >= 0 {
		return errors.New("debit amount must be negative")
	}
	return r.apply(ctx, userID, tx, false)
}

func (r *WalletRepository) apply(ctx context.Context, userID string, tx models.Transaction, upsert bool) error {
	update := bson.M{
		"$inc": bson.M{"balance": tx.Amount},
		"$push": bson.M{"transactions": bson.M{
			"$each": bson.A{tx},
			"$sort": bson.M{"date": -1},
		}},
	}
	opts := options.Update().SetUpsert(upsert)
	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update, opts)
	if err != nil {
		return err
	}
	if !upsert && result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// TopBalances returns the highest wallet balances joined with user details
// for the ranking page. Wallets whose user document is missing are skipped
// by the caller.
func (r *WalletRepository) TopBalances(ctx context.Context, limit int) ([]*models.RichestEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"balance": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "discordId",
			"as":           "userDetails",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$userDetails", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"discordId": "$userDetails.discordId",
			"name":      "$userDetails.name",
			"avatar":    "$userDetails.image",
			"balance":   1,
			"isVip":     "$userDetails.isVip",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.RichestEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.RichestEntry{}
	}
	return entries, nil
}
