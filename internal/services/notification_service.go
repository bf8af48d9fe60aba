package services

import (
	"context"

	"github.com/timaocord/wallet-backend/internal/models"
	"github.com/timaocord/wallet-backend/internal/repositories"
)

// Compile-time check to ensure notificationService implements NotificationService
var _ NotificationService = (*notificationService)(nil)

// notificationService handles the in-app notification feed
type notificationService struct {
	notifRepo repositories.NotificationRepository
	limit     int
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repositories.NotificationRepository, limit int) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		limit:     limit,
	}
}

// GetForUser retrieves a user's notifications, newest first
func (s *notificationService) GetForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.notifRepo.FindByUserID(ctx, userID, s.limit)
}

// MarkAllRead flags every unread notification for the user as read
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return s.notifRepo.MarkAllRead(ctx, userID)
}
