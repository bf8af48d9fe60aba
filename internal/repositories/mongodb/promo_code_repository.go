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

// Compile-time check to ensure PromoCodeRepository implements the interface
var _ repositories.PromoCodeRepository = (*PromoCodeRepository)(nil)

// PromoCodeRepository handles MongoDB operations for PromoCode
type PromoCodeRepository struct {
	collection *mongo.Collection
}

// NewPromoCodeRepository creates a new PromoCodeRepository
func NewPromoCodeRepository(db *mongo.Database) *PromoCodeRepository {
	return &PromoCodeRepository{
		collection: db.Collection("promo_codes"),
	}
}

// Create inserts a new promo code. The code string must already be
// normalized (uppercase); a unique index on "code" rejects duplicates.
func (r *PromoCodeRepository) Create(ctx context.Context, code *models.PromoCode) error {
	code.ID = primitive.NewObjectID()
	code.CreatedAt = time.Now()
	if code.RedeemedBy == nil {
		code.RedeemedBy = []string{}
	}
	_, err := r.collection.InsertOne(ctx, code)
	return translateErr(err)
}

// FindByCode finds a promo code by its normalized code string
func (r *PromoCodeRepository) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promo)
	if err != nil {
		return nil, translateErr(err)
	}
	return &promo, nil
}

// FindAll retrieves promo codes newest-first, capped at limit
func (r *PromoCodeRepository) FindAll(ctx context.Context, limit int) ([]*models.PromoCode, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []*models.PromoCode
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []*models.PromoCode{}
	}
	return codes, nil
}

// AppendRedemption atomically pushes the user onto redeemedBy. When this
// redemption consumes the last slot the status flips to REDEEMED in the same
// update, so no intermediate state is ever visible.
func (r *PromoCodeRepository) AppendRedemption(ctx context.Context, id primitive.ObjectID, userID string, depleted bool) error {
	update := bson.M{"$push": bson.M{"redeemedBy": userID}}
	if depleted {
		update["$set"] = bson.M{"status": models.PromoCodeStatusRedeemed}
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// UpdateStatus moves a code out of ACTIVE. Conditional on the code still
// being ACTIVE, so a terminal status can never be overwritten.
func (r *PromoCodeRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	filter := bson.M{"_id": id, "status": models.PromoCodeStatusActive}
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
