// Package store owns the in-memory mirror of every remote collection and is
// the single write path to them. The presentation layer (HTTP handlers) only
// ever reads snapshots from it and calls its typed mutation operations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
	"betpromo/pkg/logger"
)

// Store mediates every read and write against the remote collections and
// keeps the derived counters (global stats, per-day analytics) consistent
// with per-entity writes.
//
// Mutations are applied one at a time (opMu), mirroring the event-loop
// ordering of the admin UI the data model was designed for; stateMu guards
// the mirror itself so readers never block on remote calls.
type Store struct {
	repos  *repository.Repositories
	logger *logger.Logger

	// revenuePerConversion feeds the monthly revenue accumulation. It is a
	// business placeholder and therefore injected, never hardcoded.
	revenuePerConversion float64

	now func() time.Time

	opMu    sync.Mutex
	stateMu sync.RWMutex

	loaded  bool
	loadErr error

	partners      []domain.Partner
	stats         domain.GlobalStats
	analytics     []domain.DailyAnalytics
	activities    []domain.Activity
	users         []domain.AdminUser
	notifications []domain.Notification
	settings      domain.Settings
	messages      []domain.ContactMessage
	monthly       []domain.MonthlyStat
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRevenuePerConversion sets the monetary value accumulated per conversion.
func WithRevenuePerConversion(v float64) Option {
	return func(s *Store) { s.revenuePerConversion = v }
}

// New creates a new store over the given collection accessors.
func New(repos *repository.Repositories, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		repos:                repos,
		logger:               log,
		revenuePerConversion: 15,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load runs the startup protocol: fan out the reads of every collection,
// lazily create the singletons and the weekday seed records, and only then
// mark the store loaded. Any failure leaves the store unloaded with the
// error recorded; callers must treat that as a hard blocking condition.
func (s *Store) Load(ctx context.Context) error {
	var (
		partners      []domain.Partner
		statsRec      *domain.GlobalStats
		analytics     []domain.DailyAnalytics
		activities    []domain.Activity
		users         []domain.AdminUser
		notifications []domain.Notification
		settingsRec   *domain.Settings
		messages      []domain.ContactMessage
		monthly       []domain.MonthlyStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { partners = s.repos.Partners.GetAll(gctx); return nil })
	g.Go(func() error { statsRec = s.repos.Stats.Get(gctx); return nil })
	g.Go(func() error { analytics = s.repos.Analytics.GetAll(gctx); return nil })
	g.Go(func() error { activities = s.repos.Activities.GetAll(gctx, domain.MaxActivities); return nil })
	g.Go(func() error { users = s.repos.Users.GetAll(gctx); return nil })
	g.Go(func() error { notifications = s.repos.Notifications.GetAll(gctx); return nil })
	g.Go(func() error { settingsRec = s.repos.Settings.Get(gctx); return nil })
	g.Go(func() error { messages = s.repos.Messages.GetAll(gctx); return nil })
	g.Go(func() error { monthly = s.repos.Monthly.GetAll(gctx); return nil })
	if err := g.Wait(); err != nil {
		return s.failLoad(err)
	}

	if statsRec == nil {
		created, err := s.repos.Stats.Create(ctx, repository.Fields{
			"totalVisitors":    0,
			"totalClicks":      0,
			"totalConversions": 0,
			"conversionRate":   0,
			"revenue":          0,
		})
		if err != nil {
			return s.failLoad(err)
		}
		statsRec = created
	}

	if settingsRec == nil {
		defaults := domain.DefaultSettings()
		created, err := s.repos.Settings.Create(ctx, repository.Fields{
			"profile":       defaults.Profile,
			"site":          defaults.Site,
			"notifications": defaults.Notifications,
		})
		if err != nil {
			return s.failLoad(err)
		}
		// PocketBase may echo empty JSON blocks on create; adopt the
		// defaults we asked for, keeping the assigned id.
		defaults.ID = created.ID
		settingsRec = &defaults
	}

	if len(analytics) == 0 {
		seeded, err := s.seedAnalytics(ctx)
		if err != nil {
			return s.failLoad(err)
		}
		analytics = seeded
	}
	sort.Slice(analytics, func(i, j int) bool { return analytics[i].DayIndex < analytics[j].DayIndex })

	s.stateMu.Lock()
	s.partners = partners
	s.stats = *statsRec
	s.analytics = analytics
	s.activities = activities
	s.users = users
	s.notifications = notifications
	s.settings = *settingsRec
	s.messages = messages
	s.monthly = monthly
	s.loaded = true
	s.loadErr = nil
	s.stateMu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"partners":      len(partners),
		"users":         len(users),
		"notifications": len(notifications),
		"messages":      len(messages),
	}).Info("Data store loaded")
	return nil
}

// seedAnalytics creates the seven weekday records concurrently.
func (s *Store) seedAnalytics(ctx context.Context) ([]domain.DailyAnalytics, error) {
	records := make([]domain.DailyAnalytics, 7)
	g, gctx := errgroup.WithContext(ctx)
	for dayIndex := 0; dayIndex < 7; dayIndex++ {
		g.Go(func() error {
			created, err := s.repos.Analytics.Create(gctx, repository.Fields{
				"name":        domain.WeekdayLabels[dayIndex],
				"dayIndex":    dayIndex,
				"visits":      0,
				"clicks":      0,
				"conversions": 0,
			})
			if err != nil {
				return err
			}
			records[dayIndex] = *created
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) failLoad(err error) error {
	s.stateMu.Lock()
	s.loaded = false
	s.loadErr = err
	s.stateMu.Unlock()
	s.logger.WithError(err).Error("Data store failed to load")
	return err
}

// Loaded reports whether the startup load completed, and the recorded error
// when it did not.
func (s *Store) Loaded() (bool, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loaded, s.loadErr
}

// Partners returns a copy of the partner list, newest first.
func (s *Store) Partners() []domain.Partner {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.Partner, len(s.partners))
	copy(out, s.partners)
	return out
}

// ActivePartners returns the partners flagged active, newest first.
func (s *Store) ActivePartners() []domain.Partner {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.Partner, 0, len(s.partners))
	for _, p := range s.partners {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// Partner looks up one partner by id.
func (s *Store) Partner(id string) (domain.Partner, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	for _, p := range s.partners {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Partner{}, false
}

// Stats returns the global stats aggregate.
func (s *Store) Stats() domain.GlobalStats {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.stats
}

// Analytics returns the weekday records in calendar order (Sunday first).
func (s *Store) Analytics() []domain.DailyAnalytics {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.DailyAnalytics, len(s.analytics))
	copy(out, s.analytics)
	return out
}

// WeeklyAnalytics returns the weekday records in display order, Monday first.
func (s *Store) WeeklyAnalytics() []domain.DailyAnalytics {
	calendar := s.Analytics()
	out := make([]domain.DailyAnalytics, 0, len(calendar))
	for offset := 1; offset <= 7; offset++ {
		dayIndex := offset % 7
		for _, day := range calendar {
			if day.DayIndex == dayIndex {
				out = append(out, day)
				break
			}
		}
	}
	return out
}

// Activities returns the activity feed, newest first.
func (s *Store) Activities() []domain.Activity {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Users returns the admin users, newest first.
func (s *Store) Users() []domain.AdminUser {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.AdminUser, len(s.users))
	copy(out, s.users)
	return out
}

// Notifications returns the notification list, newest first.
func (s *Store) Notifications() []domain.Notification {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Settings returns the settings aggregate.
func (s *Store) Settings() domain.Settings {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.settings
}

// Messages returns the contact messages, newest first.
func (s *Store) Messages() []domain.ContactMessage {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.ContactMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// MonthlyStats returns the monthly records, most recent month first.
func (s *Store) MonthlyStats() []domain.MonthlyStat {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]domain.MonthlyStat, len(s.monthly))
	copy(out, s.monthly)
	return out
}
