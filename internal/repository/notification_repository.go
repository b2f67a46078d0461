package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// notificationRepository accesses the notifications collection over PocketBase
type notificationRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists every notification, newest first. Fails soft.
func (r *notificationRepository) GetAll(ctx context.Context) []domain.Notification {
	items, err := r.client.List(ctx, pocketbase.CollectionNotifications, pocketbase.ListQuery{Sort: "-created"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch notifications")
		return []domain.Notification{}
	}
	return decodeList[domain.Notification](items, r.logger, pocketbase.CollectionNotifications)
}

// Create inserts a notification
func (r *notificationRepository) Create(ctx context.Context, fields Fields) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.client.Create(ctx, pocketbase.CollectionNotifications, fields, &notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &notification, nil
}

// Update patches a notification
func (r *notificationRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.client.Update(ctx, pocketbase.CollectionNotifications, id, fields, &notification); err != nil {
		return nil, fmt.Errorf("failed to update notification %s: %w", id, err)
	}
	return &notification, nil
}

// Delete removes a notification
func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, pocketbase.CollectionNotifications, id); err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return nil
}
