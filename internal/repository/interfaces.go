package repository

import (
	"context"

	"betpromo/internal/domain"
)

// Fields is a partial record payload. Updates are shallow merges: each listed
// field overwrites the stored value, unlisted fields are untouched.
type Fields map[string]interface{}

// PartnerRepository accesses the bookmakers collection
type PartnerRepository interface {
	// GetAll lists every partner, newest first. Fails soft: transport errors
	// yield an empty list, not an error.
	GetAll(ctx context.Context) []domain.Partner

	// Create inserts a new partner record
	Create(ctx context.Context, fields Fields) (*domain.Partner, error)

	// Update patches a partner record
	Update(ctx context.Context, id string, fields Fields) (*domain.Partner, error)

	// Delete removes a partner record
	Delete(ctx context.Context, id string) error
}

// StatsRepository accesses the stats singleton collection
type StatsRepository interface {
	// Get returns the singleton record, or nil when absent. Fails soft.
	Get(ctx context.Context) *domain.GlobalStats

	// Create inserts the singleton record
	Create(ctx context.Context, fields Fields) (*domain.GlobalStats, error)

	// Update patches the singleton record by id
	Update(ctx context.Context, id string, fields Fields) (*domain.GlobalStats, error)
}

// ActivityRepository accesses the activities collection
type ActivityRepository interface {
	// GetAll lists the most recent entries, newest first, capped at limit.
	// Fails soft.
	GetAll(ctx context.Context, limit int) []domain.Activity

	// Create appends an activity entry
	Create(ctx context.Context, fields Fields) (*domain.Activity, error)
}

// AnalyticsRepository accesses the analytics (per-weekday) collection
type AnalyticsRepository interface {
	// GetAll lists the weekday records ordered by dayIndex. Fails soft.
	GetAll(ctx context.Context) []domain.DailyAnalytics

	// Create inserts a weekday record
	Create(ctx context.Context, fields Fields) (*domain.DailyAnalytics, error)

	// Update patches a weekday record
	Update(ctx context.Context, id string, fields Fields) (*domain.DailyAnalytics, error)
}

// UserRepository accesses the admin users collection
type UserRepository interface {
	// GetAll lists every admin user, newest first. Fails soft.
	GetAll(ctx context.Context) []domain.AdminUser

	// Create inserts a new admin user
	Create(ctx context.Context, fields Fields) (*domain.AdminUser, error)

	// Update patches an admin user
	Update(ctx context.Context, id string, fields Fields) (*domain.AdminUser, error)

	// Delete removes an admin user
	Delete(ctx context.Context, id string) error
}

// NotificationRepository accesses the notifications collection
type NotificationRepository interface {
	// GetAll lists every notification, newest first. Fails soft.
	GetAll(ctx context.Context) []domain.Notification

	// Create inserts a notification
	Create(ctx context.Context, fields Fields) (*domain.Notification, error)

	// Update patches a notification
	Update(ctx context.Context, id string, fields Fields) (*domain.Notification, error)

	// Delete removes a notification
	Delete(ctx context.Context, id string) error
}

// SettingsRepository accesses the settings singleton collection
type SettingsRepository interface {
	// Get returns the singleton record, or nil when absent. Fails soft.
	Get(ctx context.Context) *domain.Settings

	// Create inserts the singleton record
	Create(ctx context.Context, fields Fields) (*domain.Settings, error)

	// Update patches the singleton record by id
	Update(ctx context.Context, id string, fields Fields) (*domain.Settings, error)
}

// MessageRepository accesses the contact messages collection
type MessageRepository interface {
	// GetAll lists every message, newest first. Fails soft.
	GetAll(ctx context.Context) []domain.ContactMessage

	// Create inserts a contact message
	Create(ctx context.Context, fields Fields) (*domain.ContactMessage, error)

	// Update patches a contact message
	Update(ctx context.Context, id string, fields Fields) (*domain.ContactMessage, error)

	// Delete removes a contact message
	Delete(ctx context.Context, id string) error
}

// MonthlyStatsRepository accesses the monthly stats collection
type MonthlyStatsRepository interface {
	// GetAll lists every monthly record, most recent month first. Fails soft.
	GetAll(ctx context.Context) []domain.MonthlyStat

	// Find returns the record for one month/year, or nil when absent. Fails soft.
	Find(ctx context.Context, month, year int) *domain.MonthlyStat

	// Create inserts a monthly record
	Create(ctx context.Context, fields Fields) (*domain.MonthlyStat, error)

	// Update patches a monthly record
	Update(ctx context.Context, id string, fields Fields) (*domain.MonthlyStat, error)
}

// Repositories aggregates one accessor per remote collection
type Repositories struct {
	Partners      PartnerRepository
	Stats         StatsRepository
	Activities    ActivityRepository
	Analytics     AnalyticsRepository
	Users         UserRepository
	Notifications NotificationRepository
	Settings      SettingsRepository
	Messages      MessageRepository
	Monthly       MonthlyStatsRepository
}
