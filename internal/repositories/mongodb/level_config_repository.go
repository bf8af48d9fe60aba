package mongodb

import (
	"context"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure LevelConfigRepository implements the interface
var _ repositories.LevelConfigRepository = (*LevelConfigRepository)(nil)

// levelConfigDoc is the single document holding the XP ladder
type levelConfigDoc struct {
	Levels []models.LevelThreshold `bson:"levels"`
}

// LevelConfigRepository handles MongoDB operations for the level ladder
type LevelConfigRepository struct {
	collection *mongo.Collection
}

// NewLevelConfigRepository creates a new LevelConfigRepository
func NewLevelConfigRepository(db *mongo.Database) *LevelConfigRepository {
	return &LevelConfigRepository{
		collection: db.Collection("level_config"),
	}
}

// Get retrieves the configured thresholds. Returns ErrNotFound when the
// ladder has never been written; the service seeds the defaults then.
func (r *LevelConfigRepository) Get(ctx context.Context) ([]models.LevelThreshold, error) {
	var doc levelConfigDoc
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&doc)
	if err != nil {
		return nil, translateErr(err)
	}
	if len(doc.Levels) == 0 {
		return nil, repositories.ErrNotFound
	}
	return doc.Levels, nil
}

// Update replaces the ladder, creating the document if absent
func (r *LevelConfigRepository) Update(ctx context.Context, levels []models.LevelThreshold) error {
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$set": bson.M{"levels": levels}}
	_, err := r.collection.UpdateOne(ctx, bson.M{}, update, opts)
	return err
}
