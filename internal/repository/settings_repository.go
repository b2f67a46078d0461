package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// settingsRepository accesses the settings singleton collection over PocketBase
type settingsRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// Get returns the singleton record, or nil when absent. Fails soft.
func (r *settingsRepository) Get(ctx context.Context) *domain.Settings {
	items, err := r.client.List(ctx, pocketbase.CollectionSettings, pocketbase.ListQuery{})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch settings")
		return nil
	}
	records := decodeList[domain.Settings](items, r.logger, pocketbase.CollectionSettings)
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

// Create inserts the singleton record
func (r *settingsRepository) Create(ctx context.Context, fields Fields) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.client.Create(ctx, pocketbase.CollectionSettings, fields, &settings); err != nil {
		return nil, fmt.Errorf("failed to create settings record: %w", err)
	}
	return &settings, nil
}

// Update patches the singleton record by id
func (r *settingsRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.client.Update(ctx, pocketbase.CollectionSettings, id, fields, &settings); err != nil {
		return nil, fmt.Errorf("failed to update settings record %s: %w", id, err)
	}
	return &settings, nil
}
