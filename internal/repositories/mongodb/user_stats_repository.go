package mongodb

import (
	"context"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserStatsRepository implements the interface
var _ repositories.UserStatsRepository = (*UserStatsRepository)(nil)

// UserStatsRepository handles MongoDB operations for UserStats
type UserStatsRepository struct {
	collection *mongo.Collection
}

// NewUserStatsRepository creates a new UserStatsRepository
func NewUserStatsRepository(db *mongo.Database) *UserStatsRepository {
	return &UserStatsRepository{
		collection: db.Collection("user_stats"),
	}
}

// FindByUserID finds aggregated stats for a user
func (r *UserStatsRepository) FindByUserID(ctx context.Context, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&stats)
	if err != nil {
		return nil, translateErr(err)
	}
	return &stats, nil
}

// IncrementPlaced records a newly placed bet
func (r *UserStatsRepository) IncrementPlaced(ctx context.Context, userID string, stake float64) error {
	return r.increment(ctx, userID, bson.M{"totalBets": 1, "totalWagered": stake})
}

// IncrementWon records a winning settlement
func (r *UserStatsRepository) IncrementWon(ctx context.Context, userID string, winnings float64) error {
	return r.increment(ctx, userID, bson.M{"betsWon": 1, "totalWinnings": winnings})
}

// IncrementLost records a losing settlement
func (r *UserStatsRepository) IncrementLost(ctx context.Context, userID string, stake float64) error {
	return r.increment(ctx, userID, bson.M{"betsLost": 1, "totalLosses": stake})
}

func (r *UserStatsRepository) increment(ctx context.Context, userID string, fields bson.M) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$inc": fields}, opts)
	return err
}
