package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
)

// NotificationService lists backend notifications for a user
type NotificationService struct {
	client tokotitoh.Client
	logger zerolog.Logger
}

// NewNotificationService creates a notification service
func NewNotificationService(client tokotitoh.Client, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		client: client,
		logger: logger.With().Str("component", "notifications").Logger(),
	}
}

// List fetches notifications, optionally scoped by user and status
func (s *NotificationService) List(ctx context.Context, userID int64, status string) ([]entities.Notification, error) {
	return s.client.Notifications(ctx, tokotitoh.NotificationsRequest{UserID: userID, Status: status})
}
