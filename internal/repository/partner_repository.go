package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// partnerRepository accesses the bookmakers collection over PocketBase
type partnerRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists every partner, newest first. Fails soft.
func (r *partnerRepository) GetAll(ctx context.Context) []domain.Partner {
	items, err := r.client.List(ctx, pocketbase.CollectionBookmakers, pocketbase.ListQuery{Sort: "-created"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch bookmakers")
		return []domain.Partner{}
	}
	return decodeList[domain.Partner](items, r.logger, pocketbase.CollectionBookmakers)
}

// Create inserts a new partner record
func (r *partnerRepository) Create(ctx context.Context, fields Fields) (*domain.Partner, error) {
	var partner domain.Partner
	if err := r.client.Create(ctx, pocketbase.CollectionBookmakers, fields, &partner); err != nil {
		return nil, fmt.Errorf("failed to create bookmaker: %w", err)
	}
	return &partner, nil
}

// Update patches a partner record
func (r *partnerRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Partner, error) {
	var partner domain.Partner
	if err := r.client.Update(ctx, pocketbase.CollectionBookmakers, id, fields, &partner); err != nil {
		return nil, fmt.Errorf("failed to update bookmaker %s: %w", id, err)
	}
	return &partner, nil
}

// Delete removes a partner record
func (r *partnerRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, pocketbase.CollectionBookmakers, id); err != nil {
		return fmt.Errorf("failed to delete bookmaker %s: %w", id, err)
	}
	return nil
}
