package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// statsRepository accesses the stats singleton collection over PocketBase
type statsRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// Get returns the singleton record, or nil when absent. Fails soft.
func (r *statsRepository) Get(ctx context.Context) *domain.GlobalStats {
	items, err := r.client.List(ctx, pocketbase.CollectionStats, pocketbase.ListQuery{})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch stats")
		return nil
	}
	records := decodeList[domain.GlobalStats](items, r.logger, pocketbase.CollectionStats)
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

// Create inserts the singleton record
func (r *statsRepository) Create(ctx context.Context, fields Fields) (*domain.GlobalStats, error) {
	var stats domain.GlobalStats
	if err := r.client.Create(ctx, pocketbase.CollectionStats, fields, &stats); err != nil {
		return nil, fmt.Errorf("failed to create stats record: %w", err)
	}
	return &stats, nil
}

// Update patches the singleton record by id
func (r *statsRepository) Update(ctx context.Context, id string, fields Fields) (*domain.GlobalStats, error) {
	var stats domain.GlobalStats
	if err := r.client.Update(ctx, pocketbase.CollectionStats, id, fields, &stats); err != nil {
		return nil, fmt.Errorf("failed to update stats record %s: %w", id, err)
	}
	return &stats, nil
}
