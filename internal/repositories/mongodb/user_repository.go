package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return translateErr(err)
}

// FindByDiscordID finds a user by Discord ID
func (r *UserRepository) FindByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"discordId": discordID}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": user}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// IncrementXP atomically increments the XP for a user
func (r *UserRepository) IncrementXP(ctx context.Context, discordID string, amount int) error {
	if amount <= 0 {
		return errors.New("xp amount must be positive")
	}
	filter := bson.M{"discordId": discordID}
	update := bson.M{"$inc": bson.M{"xp": amount}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetLevel writes the stored level field for a user
func (r *UserRepository) SetLevel(ctx context.Context, discordID string, level int) error {
	filter := bson.M{"discordId": discordID}
	update := bson.M{"$set": bson.M{"level": level}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetDailyRewardClaimed records the moment of a successful daily claim
func (r *UserRepository) SetDailyRewardClaimed(ctx context.Context, discordID string, claimedAt time.Time) error {
	filter := bson.M{"discordId": discordID}
	update := bson.M{"$set": bson.M{"dailyRewardLastClaimed": claimedAt, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count gets the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
