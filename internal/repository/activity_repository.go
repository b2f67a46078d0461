package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// activityRepository accesses the activities collection over PocketBase
type activityRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists the most recent entries, newest first, capped at limit. Fails soft.
func (r *activityRepository) GetAll(ctx context.Context, limit int) []domain.Activity {
	if limit <= 0 {
		limit = domain.MaxActivities
	}
	items, err := r.client.List(ctx, pocketbase.CollectionActivities, pocketbase.ListQuery{
		Sort:    "-created",
		Page:    1,
		PerPage: limit,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch activities")
		return []domain.Activity{}
	}
	return decodeList[domain.Activity](items, r.logger, pocketbase.CollectionActivities)
}

// Create appends an activity entry
func (r *activityRepository) Create(ctx context.Context, fields Fields) (*domain.Activity, error) {
	var activity domain.Activity
	if err := r.client.Create(ctx, pocketbase.CollectionActivities, fields, &activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &activity, nil
}
