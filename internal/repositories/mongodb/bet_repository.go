package mongodb

import (
	"context"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure BetRepository implements the interface
var _ repositories.BetRepository = (*BetRepository)(nil)

// BetRepository handles MongoDB operations for PlacedBet
type BetRepository struct {
	collection *mongo.Collection
}

// NewBetRepository creates a new BetRepository
func NewBetRepository(db *mongo.Database) *BetRepository {
	return &BetRepository{
		collection: db.Collection("bets"),
	}
}

// Create inserts a new placed bet
func (r *BetRepository) Create(ctx context.Context, bet *models.PlacedBet) error {
	bet.ID = primitive.NewObjectID()
	if bet.CreatedAt.IsZero() {
		bet.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, bet)
	return err
}

// FindByID finds a bet by ID
func (r *BetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PlacedBet, error) {
	var bet models.PlacedBet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bet)
	if err != nil {
		return nil, translateErr(err)
	}
	return &bet, nil
}

// FindByUserID finds a user's bets, newest first
func (r *BetRepository) FindByUserID(ctx context.Context, userID string) ([]*models.PlacedBet, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bets []*models.PlacedBet
	if err = cursor.All(ctx, &bets); err != nil {
		return nil, err
	}
	if bets == nil {
		bets = []*models.PlacedBet{}
	}
	return bets, nil
}

// Settle moves an open bet into a terminal status. Conditional on the bet
// still being open so a bet is never settled twice.
func (r *BetRepository) Settle(ctx context.Context, id primitive.ObjectID, status string, settledAt time.Time) error {
	filter := bson.M{"_id": id, "status": models.BetStatusOpen}
	update := bson.M{"$set": bson.M{"status": status, "settledAt": settledAt}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
