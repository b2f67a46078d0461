package store

import (
	"context"
	"fmt"

	"betpromo/internal/domain"
	"betpromo/internal/repository"
)

// AddUser creates a back-office account. Role defaults to viewer and status
// to active when left empty; a user notification is emitted on success.
func (s *Store) AddUser(ctx context.Context, f domain.AdminUserFields) (*domain.AdminUser, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	role := domain.NormalizedRole(f.Role)
	status := f.Status
	if status == "" {
		status = domain.StatusActive
	}
	passwordConfirm := f.PasswordConfirm
	if passwordConfirm == "" {
		passwordConfirm = f.Password
	}

	created, err := s.repos.Users.Create(ctx, repository.Fields{
		"name":            f.Name,
		"email":           f.Email,
		"password":        f.Password,
		"passwordConfirm": passwordConfirm,
		"role":            role,
		"status":          status,
		"lastLogin":       "",
	})
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	s.users = append([]domain.AdminUser{*created}, s.users...)
	s.stateMu.Unlock()

	s.derived(ctx, "user_notification", func(ctx context.Context) error {
		return s.notify(ctx, domain.NotificationFields{
			Type:    domain.NotificationUser,
			Title:   "Nouvel utilisateur",
			Message: fmt.Sprintf("%s a rejoint l'équipe", created.Name),
			Icon:    "user-plus",
			Color:   "#8B5CF6",
		})
	})
	s.derived(ctx, "user_activity", func(ctx context.Context) error {
		return s.logActivity(ctx, domain.ActivityAdd, fmt.Sprintf("Utilisateur %s créé", created.Name))
	})

	return created, nil
}

// UpdateUser patches a back-office account. An empty password means the
// password is untouched.
func (s *Store) UpdateUser(ctx context.Context, id string, f domain.AdminUserFields) (*domain.AdminUser, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	fields := repository.Fields{
		"name":  f.Name,
		"email": f.Email,
	}
	if f.Role != "" {
		fields["role"] = domain.NormalizedRole(f.Role)
	}
	if f.Status != "" {
		fields["status"] = f.Status
	}
	if f.Password != "" {
		fields["password"] = f.Password
		passwordConfirm := f.PasswordConfirm
		if passwordConfirm == "" {
			passwordConfirm = f.Password
		}
		fields["passwordConfirm"] = passwordConfirm
	}

	updated, err := s.repos.Users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = *updated
			break
		}
	}
	s.stateMu.Unlock()
	return updated, nil
}

// DeleteUser removes a back-office account remotely, then from the mirror.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.repos.Users.Delete(ctx, id); err != nil {
		return err
	}

	s.stateMu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.stateMu.Unlock()
	return nil
}

// TouchLastLogin records a successful login time on the account. Best effort:
// a failure is logged, never surfaced to the login flow.
func (s *Store) TouchLastLogin(ctx context.Context, id, when string) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.derived(ctx, "user_last_login", func(ctx context.Context) error {
		updated, err := s.repos.Users.Update(ctx, id, repository.Fields{"lastLogin": when})
		if err != nil {
			return err
		}
		s.stateMu.Lock()
		for i := range s.users {
			if s.users[i].ID == id {
				s.users[i] = *updated
				break
			}
		}
		s.stateMu.Unlock()
		return nil
	})
}
