package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// analyticsRepository accesses the per-weekday analytics collection over PocketBase
type analyticsRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists the weekday records ordered by dayIndex. Fails soft.
func (r *analyticsRepository) GetAll(ctx context.Context) []domain.DailyAnalytics {
	items, err := r.client.List(ctx, pocketbase.CollectionAnalytics, pocketbase.ListQuery{Sort: "dayIndex"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch analytics")
		return []domain.DailyAnalytics{}
	}
	return decodeList[domain.DailyAnalytics](items, r.logger, pocketbase.CollectionAnalytics)
}

// Create inserts a weekday record
func (r *analyticsRepository) Create(ctx context.Context, fields Fields) (*domain.DailyAnalytics, error) {
	var day domain.DailyAnalytics
	if err := r.client.Create(ctx, pocketbase.CollectionAnalytics, fields, &day); err != nil {
		return nil, fmt.Errorf("failed to create analytics record: %w", err)
	}
	return &day, nil
}

// Update patches a weekday record
func (r *analyticsRepository) Update(ctx context.Context, id string, fields Fields) (*domain.DailyAnalytics, error) {
	var day domain.DailyAnalytics
	if err := r.client.Update(ctx, pocketbase.CollectionAnalytics, id, fields, &day); err != nil {
		return nil, fmt.Errorf("failed to update analytics record %s: %w", id, err)
	}
	return &day, nil
}
