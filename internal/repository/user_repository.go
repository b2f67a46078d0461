package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// userRepository accesses the admin users collection over PocketBase
type userRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists every admin user, newest first. Fails soft.
func (r *userRepository) GetAll(ctx context.Context) []domain.AdminUser {
	items, err := r.client.List(ctx, pocketbase.CollectionUsers, pocketbase.ListQuery{Sort: "-created"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch users")
		return []domain.AdminUser{}
	}
	return decodeList[domain.AdminUser](items, r.logger, pocketbase.CollectionUsers)
}

// Create inserts a new admin user
func (r *userRepository) Create(ctx context.Context, fields Fields) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.client.Create(ctx, pocketbase.CollectionUsers, fields, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update patches an admin user
func (r *userRepository) Update(ctx context.Context, id string, fields Fields) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.client.Update(ctx, pocketbase.CollectionUsers, id, fields, &user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &user, nil
}

// Delete removes an admin user
func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, pocketbase.CollectionUsers, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
