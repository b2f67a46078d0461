package store

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// AddPartner creates a bookmaker with zeroed counters. On success the record
// joins the mirror and a notification plus an activity entry are emitted.
func (s *Store) AddPartner(ctx context.Context, f domain.PartnerFields) (*domain.Partner, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	created, err := s.repos.Partners.Create(ctx, repository.Fields{
		"name":        f.Name,
		"logo":        f.Logo,
		"bonus":       f.Bonus,
		"description": f.Description,
		"promoCode":   f.PromoCode,
		"code":        f.Code,
		"rating":      f.Rating,
		"link":        f.Link,
		"features":    f.Features,
		"color":       f.Color,
		"gradient":    f.Gradient,
		"isActive":    f.IsActive,
		"clicks":      0,
		"conversions": 0,
		"users":       0,
	})
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	s.partners = append([]domain.Partner{*created}, s.partners...)
	s.stateMu.Unlock()

	s.derived(ctx, "partner_notification", func(ctx context.Context) error {
		return s.notify(ctx, domain.NotificationFields{
			Type:    domain.NotificationBookmaker,
			Title:   "Nouveau bookmaker",
			Message: fmt.Sprintf("%s a été ajouté à la liste", created.Name),
			Icon:    "briefcase",
			Color:   "#3B82F6",
		})
	})
	s.derived(ctx, "partner_activity", func(ctx context.Context) error {
		return s.logActivity(ctx, domain.ActivityAdd, fmt.Sprintf("Bookmaker %s ajouté", created.Name))
	})

	return created, nil
}

// UpdatePartner patches a bookmaker. The in-memory record takes the merged
// result, last write wins per field.
func (s *Store) UpdatePartner(ctx context.Context, id string, fields repository.Fields) (*domain.Partner, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	updated, err := s.repos.Partners.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			s.partners[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return updated, nil
}

// DeletePartner removes a bookmaker remotely first, then evicts it from the
// mirror, then logs the deletion under the name captured before removal.
func (s *Store) DeletePartner(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	name := ""
	s.stateMu.RLock()
	for _, p := range s.partners {
		if p.ID == id {
			name = p.Name
			break
		}
	}
	s.stateMu.RUnlock()

	if err := s.repos.Partners.Delete(ctx, id); err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			s.partners = append(s.partners[:i], s.partners[i+1:]...)
			break
		}
	}
	s.stateMu.Unlock()

	s.derived(ctx, "partner_delete_activity", func(ctx context.Context) error {
		return s.logActivity(ctx, domain.ActivityDelete, fmt.Sprintf("Bookmaker %s supprimé", name))
	})
	return nil
}

// RecordClick registers an outbound click on a partner. Its four effects
// (partner counter, global counter, weekday counter, activity entry) are
// independent: a failure in one is logged and never blocks the others.
func (s *Store) RecordClick(ctx context.Context, partnerID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	partner, ok := s.Partner(partnerID)
	if !ok {
		return fmt.Errorf("unknown partner %s", partnerID)
	}

	s.derived(ctx, "click_partner_counter", func(ctx context.Context) error {
		updated, err := s.repos.Partners.Update(ctx, partnerID, repository.Fields{"clicks": partner.Clicks + 1})
		if err != nil {
			return err
		}
		s.stateMu.Lock()
		for i := range s.partners {
			if s.partners[i].ID == partnerID {
				s.partners[i] = *updated
				break
			}
		}
		s.stateMu.Unlock()
		return nil
	})
	s.derived(ctx, "click_global_counter", func(ctx context.Context) error {
		return s.bumpStats(ctx, func(stats *domain.GlobalStats) repository.Fields {
			return repository.Fields{"totalClicks": stats.TotalClicks + 1}
		})
	})
	s.derived(ctx, "click_daily_counter", func(ctx context.Context) error {
		return s.bumpDaily(ctx, "clicks")
	})
	s.derived(ctx, "click_activity", func(ctx context.Context) error {
		return s.logActivity(ctx, domain.ActivityClick, fmt.Sprintf("Clic sur %s", partner.Name))
	})
	s.derived(ctx, "click_monthly", func(ctx context.Context) error {
		return s.bumpMonthly(ctx, 1, 0, 0, 0)
	})

	return nil
}

// RecordVisit registers one site visit. No notification or activity is
// emitted; both counters are soft effects.
func (s *Store) RecordVisit(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.derived(ctx, "visit_global_counter", func(ctx context.Context) error {
		return s.bumpStats(ctx, func(stats *domain.GlobalStats) repository.Fields {
			return repository.Fields{"totalVisitors": stats.TotalVisitors + 1}
		})
	})
	s.derived(ctx, "visit_daily_counter", func(ctx context.Context) error {
		return s.bumpDaily(ctx, "visits")
	})
	s.derived(ctx, "visit_monthly", func(ctx context.Context) error {
		return s.bumpMonthly(ctx, 0, 0, 1, 0)
	})
}

// RecordConversion registers a conversion on a partner: the click pattern
// plus a conversion notification.
func (s *Store) RecordConversion(ctx context.Context, partnerID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	partner, ok := s.Partner(partnerID)
	if !ok {
		return fmt.Errorf("unknown partner %s", partnerID)
	}

	s.derived(ctx, "conversion_partner_counter", func(ctx context.Context) error {
		updated, err := s.repos.Partners.Update(ctx, partnerID, repository.Fields{"conversions": partner.Conversions + 1})
		if err != nil {
			return err
		}
		s.stateMu.Lock()
		for i := range s.partners {
			if s.partners[i].ID == partnerID {
				s.partners[i] = *updated
				break
			}
		}
		s.stateMu.Unlock()
		return nil
	})
	s.derived(ctx, "conversion_global_counter", func(ctx context.Context) error {
		return s.bumpStats(ctx, func(stats *domain.GlobalStats) repository.Fields {
			return repository.Fields{"totalConversions": stats.TotalConversions + 1}
		})
	})
	s.derived(ctx, "conversion_daily_counter", func(ctx context.Context) error {
		return s.bumpDaily(ctx, "conversions")
	})
	s.derived(ctx, "conversion_notification", func(ctx context.Context) error {
		return s.notify(ctx, domain.NotificationFields{
			Type:    domain.NotificationConversion,
			Title:   "Nouvelle conversion",
			Message: fmt.Sprintf("Conversion enregistrée sur %s", partner.Name),
			Icon:    "trending-up",
			Color:   "#10B981",
		})
	})
	s.derived(ctx, "conversion_activity", func(ctx context.Context) error {
		return s.logActivity(ctx, domain.ActivityConversion, fmt.Sprintf("Conversion sur %s", partner.Name))
	})
	s.derived(ctx, "conversion_monthly", func(ctx context.Context) error {
		return s.bumpMonthly(ctx, 0, 1, 0, s.revenuePerConversion)
	})

	return nil
}
