package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
)

// Service relays contact submissions over SMTP. With no SMTP host
// configured the service is disabled and every send is a logged no-op.
type Service struct {
	dialer    *gomail.Dialer
	from      string
	recipient func() string
	logger    *logger.Logger
}

// Config is the SMTP relay configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewService creates a new mail relay. recipient resolves the admin inbox
// at send time, so settings changes take effect without a restart.
func NewService(cfg Config, recipient func() string, log *logger.Logger) *Service {
	s := &Service{
		from:      cfg.From,
		recipient: recipient,
		logger:    log,
	}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	} else {
		log.Info("No SMTP host configured, mail relay disabled")
	}
	return s
}

// Enabled reports whether an SMTP relay is configured.
func (s *Service) Enabled() bool {
	return s.dialer != nil
}

// SendContactNotification forwards one contact message to the admin inbox.
func (s *Service) SendContactNotification(ctx context.Context, message domain.ContactMessage) error {
	if s.dialer == nil {
		s.logger.Debug("Mail relay disabled, skipping contact notification")
		return nil
	}

	to := s.recipient()
	if to == "" {
		s.logger.Warn("No admin recipient configured, skipping contact notification")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", message.Email)
	m.SetHeader("Subject", fmt.Sprintf("[Contact] %s", message.Subject))
	m.SetBody("text/plain", fmt.Sprintf("De : %s <%s>\n\n%s", message.Name, message.Email, message.Message))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to relay contact message %s: %w", message.ID, err)
	}

	s.logger.WithField("message_id", message.ID).Info("Contact message relayed")
	return nil
}
