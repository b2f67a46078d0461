package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// messageRepository accesses the contact messages collection over PocketBase
type messageRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists every message, newest first. Fails soft.
func (r *messageRepository) GetAll(ctx context.Context) []domain.ContactMessage {
	items, err := r.client.List(ctx, pocketbase.CollectionMessages, pocketbase.ListQuery{Sort: "-created"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch contact messages")
		return []domain.ContactMessage{}
	}
	return decodeList[domain.ContactMessage](items, r.logger, pocketbase.CollectionMessages)
}

// Create inserts a contact message
func (r *messageRepository) Create(ctx context.Context, fields Fields) (*domain.ContactMessage, error) {
	var message domain.ContactMessage
	if err := r.client.Create(ctx, pocketbase.CollectionMessages, fields, &message); err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return &message, nil
}

// Update patches a contact message
func (r *messageRepository) Update(ctx context.Context, id string, fields Fields) (*domain.ContactMessage, error) {
	var message domain.ContactMessage
	if err := r.client.Update(ctx, pocketbase.CollectionMessages, id, fields, &message); err != nil {
		return nil, fmt.Errorf("failed to update contact message %s: %w", id, err)
	}
	return &message, nil
}

// Delete removes a contact message
func (r *messageRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, pocketbase.CollectionMessages, id); err != nil {
		return fmt.Errorf("failed to delete contact message %s: %w", id, err)
	}
	return nil
}
