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

// Compile-time check to ensure PendingRewardRepository implements the interface
var _ repositories.PendingRewardRepository = (*PendingRewardRepository)(nil)

// PendingRewardRepository handles MongoDB operations for PendingReward
type PendingRewardRepository struct {
	collection *mongo.Collection
}

// NewPendingRewardRepository creates a new PendingRewardRepository
func NewPendingRewardRepository(db *mongo.Database) *PendingRewardRepository {
	return &PendingRewardRepository{
		collection: db.Collection("pending_rewards"),
	}
}

// Create inserts a new pending reward
func (r *PendingRewardRepository) Create(ctx context.Context, reward *models.PendingReward) error {
	reward.ID = primitive.NewObjectID()
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, reward)
	return err
}

// FindUnprocessed retrieves rewards the Discord bot has not delivered yet,
// oldest first
func (r *PendingRewardRepository) FindUnprocessed(ctx context.Context) ([]*models.PendingReward, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	filter := bson.M{"processedAt": bson.M{"$exists": false}}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rewards []*models.PendingReward
	if err = cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}
	if rewards == nil {
		rewards = []*models.PendingReward{}
	}
	return rewards, nil
}

// MarkProcessed records the bot's delivery acknowledgement
func (r *PendingRewardRepository) MarkProcessed(ctx context.Context, id primitive.ObjectID, processedAt time.Time) error {
	filter := bson.M{"_id": id, "processedAt": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"processedAt": processedAt}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
