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

// Compile-time check to ensure NotificationRepository implements the interface
var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository handles MongoDB operations for Notification
type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	if notification.Date.IsZero() {
		notification.Date = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// FindByUserID finds notifications for a user, newest first
func (r *NotificationRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	opts := options.Find().
		SetSort(bson.M{"date": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}

// MarkAllRead flags every unread notification for the user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	filter := bson.M{"userId": userID, "read": false}
	update := bson.M{"$set": bson.M{"read": true}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}
