package mongodb

import (
	"context"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure AdminUserRepository implements the interface
var _ repositories.AdminUserRepository = (*AdminUserRepository)(nil)

// AdminUserRepository handles MongoDB operations for AdminUser
type AdminUserRepository struct {
	collection *mongo.Collection
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *mongo.Database) *AdminUserRepository {
	return &AdminUserRepository{
		collection: db.Collection("admin_users"),
	}
}

// Create inserts a new admin user
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return translateErr(err)
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}
