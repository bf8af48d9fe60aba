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

// Compile-time check to ensure StoreRepository implements the interface
var _ repositories.StoreRepository = (*StoreRepository)(nil)

// StoreRepository handles MongoDB operations for the store catalogue and
// user inventory
type StoreRepository struct {
	items     *mongo.Collection
	inventory *mongo.Collection
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{
		items:     db.Collection("store_items"),
		inventory: db.Collection("user_inventory"),
	}
}

// FindActiveItems retrieves the purchasable catalogue
func (r *StoreRepository) FindActiveItems(ctx context.Context) ([]*models.StoreItem, error) {
	opts := options.Find().SetSort(bson.M{"price": 1})
	cursor, err := r.items.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.StoreItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.StoreItem{}
	}
	return items, nil
}

// FindItemByID finds a store item by ID
func (r *StoreRepository) FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.StoreItem, error) {
	var item models.StoreItem
	err := r.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

// InsertInventory records a purchase
func (r *StoreRepository) InsertInventory(ctx context.Context, item *models.UserInventoryItem) error {
	item.ID = primitive.NewObjectID()
	if item.PurchasedAt.IsZero() {
		item.PurchasedAt = time.Now()
	}
	_, err := r.inventory.InsertOne(ctx, item)
	return err
}

// FindInventoryByUserAndItem finds a user's purchases of a specific item
func (r *StoreRepository) FindInventoryByUserAndItem(ctx context.Context, userID string, itemID primitive.ObjectID) ([]*models.UserInventoryItem, error) {
	cursor, err := r.inventory.Find(ctx, bson.M{"userId": userID, "itemId": itemID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.UserInventoryItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.UserInventoryItem{}
	}
	return items, nil
}

// FindInventoryByCode finds an inventory item by its redemption code
func (r *StoreRepository) FindInventoryByCode(ctx context.Context, redemptionCode string) (*models.UserInventoryItem, error) {
	var item models.UserInventoryItem
	err := r.inventory.FindOne(ctx, bson.M{"redemptionCode": redemptionCode}).Decode(&item)
	if err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

// FindInventoryByUserID finds all purchases for a user, newest first
func (r *StoreRepository) FindInventoryByUserID(ctx context.Context, userID string) ([]*models.UserInventoryItem, error) {
	opts := options.Find().SetSort(bson.M{"purchasedAt": -1})
	cursor, err := r.inventory.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.UserInventoryItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.UserInventoryItem{}
	}
	return items, nil
}
