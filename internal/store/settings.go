package store

import (
	"context"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// UpdateSettings merges the patch into the settings singleton block by block.
// Load guarantees the singleton exists, so the id is always known here; the
// create path is kept for safety against a record deleted out of band.
func (s *Store) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.RLock()
	merged := s.settings
	s.stateMu.RUnlock()

	if patch.Profile != nil {
		merged.Profile = *patch.Profile
	}
	if patch.Site != nil {
		merged.Site = *patch.Site
	}
	if patch.Notifications != nil {
		merged.Notifications = *patch.Notifications
	}

	fields := repository.Fields{
		"profile":       merged.Profile,
		"site":          merged.Site,
		"notifications": merged.Notifications,
	}

	if merged.ID == "" {
		created, err := s.repos.Settings.Create(ctx, fields)
		if err != nil {
			return domain.Settings{}, err
		}
		merged.ID = created.ID
	} else {
		if _, err := s.repos.Settings.Update(ctx, merged.ID, fields); err != nil {
			return domain.Settings{}, err
		}
	}

	s.stateMu.Lock()
	s.settings = merged
	s.stateMu.Unlock()
	return merged, nil
}
