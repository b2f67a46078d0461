package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// AddNotification creates a manual notification.
func (s *Store) AddNotification(ctx context.Context, f domain.NotificationFields) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.notify(ctx, f)
}

// MarkNotificationRead flags one notification read.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	updated, err := s.repos.Notifications.Update(ctx, id, repository.Fields{"read": true})
	if err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}

// MarkAllNotificationsRead flags every unread notification read, one remote
// update per record, issued concurrently. Already-read records are skipped.
func (s *Store) MarkAllNotificationsRead(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.RLock()
	unread := make([]string, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	s.stateMu.RUnlock()
	if len(unread) == 0 {
		return nil
	}

	updates := make(map[string]domain.Notification, len(unread))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range unread {
		g.Go(func() error {
			updated, err := s.repos.Notifications.Update(gctx, id, repository.Fields{"read": true})
			if err != nil {
				return err
			}
			mu.Lock()
			updates[id] = *updated
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	s.stateMu.Lock()
	for i := range s.notifications {
		if updated, ok := updates[s.notifications[i].ID]; ok {
			s.notifications[i] = updated
		}
	}
	s.stateMu.Unlock()
	return err
}

// DeleteNotification removes a notification remotely, then from the mirror.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.repos.Notifications.Delete(ctx, id); err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}
