package store

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// derived runs one secondary effect of a primary mutation inside its own
// error boundary. A failure here never affects the primary operation's
// success or the other effects; it is logged and dropped.
func (s *Store) derived(ctx context.Context, effect string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		s.logger.WithError(err).WithField("effect", effect).Warn("Derived effect failed")
	}
}

// timeLabel formats the label attached to notifications and activities.
func (s *Store) timeLabel() string {
	return s.now().Format("15:04")
}

// notify creates a notification remotely and prepends it to the mirror.
func (s *Store) notify(ctx context.Context, f domain.NotificationFields) error {
	created, err := s.repos.Notifications.Create(ctx, repository.Fields{
		"type":    f.Type,
		"title":   f.Title,
		"message": f.Message,
		"icon":    f.Icon,
		"color":   f.Color,
		"read":    false,
		"time":    s.timeLabel(),
	})
	if err != nil {
		return err
	}
	s.stateMu.Lock()
	s.notifications = append([]domain.Notification{*created}, s.notifications...)
	s.stateMu.Unlock()
	return nil
}

// logActivity creates an activity entry remotely and prepends it to the
// mirror, evicting beyond the retained cap.
func (s *Store) logActivity(ctx context.Context, activityType, message string) error {
	created, err := s.repos.Activities.Create(ctx, repository.Fields{
		"type":    activityType,
		"message": message,
		"time":    s.timeLabel(),
	})
	if err != nil {
		return err
	}
	s.stateMu.Lock()
	s.activities = append([]domain.Activity{*created}, s.activities...)
	if len(s.activities) > domain.MaxActivities {
		s.activities = s.activities[:domain.MaxActivities]
	}
	s.stateMu.Unlock()
	return nil
}

// bumpStats increments counters of the global stats singleton. No-op when
// the singleton id is unknown.
func (s *Store) bumpStats(ctx context.Context, delta func(*domain.GlobalStats) repository.Fields) error {
	s.stateMu.RLock()
	stats := s.stats
	s.stateMu.RUnlock()
	if stats.ID == "" {
		return nil
	}

	fields := delta(&stats)
	updated, err := s.repos.Stats.Update(ctx, stats.ID, fields)
	if err != nil {
		return err
	}

	s.stateMu.Lock()
	id := s.stats.ID
	s.stats = *updated
	s.stats.ID = id
	s.stateMu.Unlock()
	return nil
}

// bumpDaily increments one counter of today's weekday record. No-op when no
// record matches the current weekday index.
func (s *Store) bumpDaily(ctx context.Context, counter string) error {
	today := int(s.now().Weekday())

	s.stateMu.RLock()
	var day *domain.DailyAnalytics
	for i := range s.analytics {
		if s.analytics[i].DayIndex == today {
			d := s.analytics[i]
			day = &d
			break
		}
	}
	s.stateMu.RUnlock()
	if day == nil {
		return nil
	}

	var value int64
	switch counter {
	case "visits":
		value = day.Visits + 1
	case "clicks":
		value = day.Clicks + 1
	case "conversions":
		value = day.Conversions + 1
	default:
		return fmt.Errorf("unknown daily counter %q", counter)
	}

	updated, err := s.repos.Analytics.Update(ctx, day.ID, repository.Fields{counter: value})
	if err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.analytics {
		if s.analytics[i].ID == day.ID {
			s.analytics[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}

// bumpMonthly upserts the current month's record with the given deltas.
func (s *Store) bumpMonthly(ctx context.Context, clicks, conversions, visitors int64, revenue float64) error {
	now := s.now()
	month, year := int(now.Month()), now.Year()

	s.stateMu.RLock()
	var current *domain.MonthlyStat
	for i := range s.monthly {
		if s.monthly[i].Month == month && s.monthly[i].Year == year {
			m := s.monthly[i]
			current = &m
			break
		}
	}
	s.stateMu.RUnlock()

	if current == nil {
		created, err := s.repos.Monthly.Create(ctx, repository.Fields{
			"month":       month,
			"year":        year,
			"clicks":      clicks,
			"conversions": conversions,
			"visitors":    visitors,
			"revenue":     revenue,
		})
		if err != nil {
			return err
		}
		s.stateMu.Lock()
		s.monthly = append([]domain.MonthlyStat{*created}, s.monthly...)
		s.stateMu.Unlock()
		return nil
	}

	updated, err := s.repos.Monthly.Update(ctx, current.ID, repository.Fields{
		"clicks":      current.Clicks + clicks,
		"conversions": current.Conversions + conversions,
		"visitors":    current.Visitors + visitors,
		"revenue":     current.Revenue + revenue,
	})
	if err != nil {
		return err
	}
	s.stateMu.Lock()
	for i := range s.monthly {
		if s.monthly[i].ID == updated.ID {
			s.monthly[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}
