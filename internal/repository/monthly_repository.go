package repository

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// monthlyStatsRepository accesses the monthly stats collection over PocketBase
type monthlyStatsRepository struct {
	client *pocketbase.Client
	logger *logger.Logger
}

// GetAll lists every monthly record, most recent month first. Fails soft.
func (r *monthlyStatsRepository) GetAll(ctx context.Context) []domain.MonthlyStat {
	items, err := r.client.List(ctx, pocketbase.CollectionMonthlyStats, pocketbase.ListQuery{Sort: "-year,-month"})
	if err != nil {
		r.logger.WithError(err).Error("Failed to fetch monthly stats")
		return []domain.MonthlyStat{}
	}
	return decodeList[domain.MonthlyStat](items, r.logger, pocketbase.CollectionMonthlyStats)
}

// Find returns the record for one month/year, or nil when absent. Fails soft.
func (r *monthlyStatsRepository) Find(ctx context.Context, month, year int) *domain.MonthlyStat {
	items, err := r.client.List(ctx, pocketbase.CollectionMonthlyStats, pocketbase.ListQuery{
		Page:    1,
		PerPage: 1,
		Filter:  fmt.Sprintf("month=%d && year=%d", month, year),
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to look up monthly stats")
		return nil
	}
	records := decodeList[domain.MonthlyStat](items, r.logger, pocketbase.CollectionMonthlyStats)
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

// Create inserts a monthly record
func (r *monthlyStatsRepository) Create(ctx context.Context, fields Fields) (*domain.MonthlyStat, error) {
	var stat domain.MonthlyStat
	if err := r.client.Create(ctx, pocketbase.CollectionMonthlyStats, fields, &stat); err != nil {
		return nil, fmt.Errorf("failed to create monthly stats record: %w", err)
	}
	return &stat, nil
}

// Update patches a monthly record
func (r *monthlyStatsRepository) Update(ctx context.Context, id string, fields Fields) (*domain.MonthlyStat, error) {
	var stat domain.MonthlyStat
	if err := r.client.Update(ctx, pocketbase.CollectionMonthlyStats, id, fields, &stat); err != nil {
		return nil, fmt.Errorf("failed to update monthly stats record %s: %w", id, err)
	}
	return &stat, nil
}
