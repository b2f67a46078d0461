package store

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// AddContactMessage stores a public contact-form submission and emits a
// message notification for the back office.
func (s *Store) AddContactMessage(ctx context.Context, f domain.ContactMessageFields) (*domain.ContactMessage, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	created, err := s.repos.Messages.Create(ctx, repository.Fields{
		"name":    f.Name,
		"email":   f.Email,
		"subject": f.Subject,
		"message": f.Message,
		"read":    false,
	})
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	s.messages = append([]domain.ContactMessage{*created}, s.messages...)
	s.stateMu.Unlock()

	s.derived(ctx, "message_notification", func(ctx context.Context) error {
		return s.notify(ctx, domain.NotificationFields{
			Type:    domain.NotificationMessage,
			Title:   "Nouveau message",
			Message: fmt.Sprintf("%s : %s", created.Name, created.Subject),
			Icon:    "mail",
			Color:   "#F59E0B",
		})
	})

	return created, nil
}

// MarkMessageRead flags a contact message read.
func (s *Store) MarkMessageRead(ctx context.Context, id string) (*domain.ContactMessage, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	updated, err := s.repos.Messages.Update(ctx, id, repository.Fields{"read": true})
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return updated, nil
}

// DeleteContactMessage removes a message remotely, then from the mirror.
func (s *Store) DeleteContactMessage(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.repos.Messages.Delete(ctx, id); err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}
