package mongodb

import (
	"context"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure MatchRepository implements the interface
var _ repositories.MatchRepository = (*MatchRepository)(nil)

// MatchRepository handles MongoDB read access to fixtures
type MatchRepository struct {
	collection *mongo.Collection
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{
		collection: db.Collection("matches"),
	}
}

// Upsert inserts or replaces fixtures by their provider ID
func (r *MatchRepository) Upsert(ctx context.Context, matches []*models.Match) error {
	opts := options.Replace().SetUpsert(true)
	for _, match := range matches {
		if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": match.ID}, match, opts); err != nil {
			return err
		}
	}
	return nil
}

// FindByIDs finds matches by their fixture IDs
func (r *MatchRepository) FindByIDs(ctx context.Context, ids []int) ([]*models.Match, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []*models.Match
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*models.Match{}
	}
	return matches, nil
}
