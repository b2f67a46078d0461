package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betpromo/internal/domain"
	"betpromo/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "development")
	require.NoError(t, err)
	return log
}

func TestServiceDisabledWithoutHost(t *testing.T) {
	svc := NewService(Config{}, func() string { return "admin@betpromo.com" }, newTestLogger(t))

	assert.False(t, svc.Enabled())

	// Sends are silent no-ops when disabled
	err := svc.SendContactNotification(context.Background(), domain.ContactMessage{
		ID: "m-1", Name: "Jean", Email: "jean@example.com",
		Subject: "Question", Message: "Bonjour",
	})
	assert.NoError(t, err)
}

func TestServiceEnabledWithHost(t *testing.T) {
	svc := NewService(Config{
		Host: "smtp.example.com", Port: 587,
		Username: "relay", Password: "secret",
		From: "noreply@betpromo.com",
	}, func() string { return "admin@betpromo.com" }, newTestLogger(t))

	assert.True(t, svc.Enabled())
}

func TestSendSkipsWithoutRecipient(t *testing.T) {
	svc := NewService(Config{
		Host: "smtp.example.com", Port: 587, From: "noreply@betpromo.com",
	}, func() string { return "" }, newTestLogger(t))

	require.True(t, svc.Enabled())

	// No admin inbox configured yet: skip rather than fail
	err := svc.SendContactNotification(context.Background(), domain.ContactMessage{ID: "m-2"})
	assert.NoError(t, err)
}
