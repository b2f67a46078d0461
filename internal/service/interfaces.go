package service

import (
	"context"

	"betpromo/internal/domain"
)

// Traffic guards the public tracking endpoints. Implementations must fail
// open: a broken guard counts traffic, it never drops it.
type Traffic interface {
	// AllowClick reports whether a click from this IP should be counted
	AllowClick(ctx context.Context, ipAddress string) bool

	// FirstVisitToday reports whether this visitor has not yet been counted today
	FirstVisitToday(ctx context.Context, ipAddress, userAgent string) bool

	// FirstConversion reports whether this visitor has not yet converted on this partner
	FirstConversion(ctx context.Context, partnerID, ipAddress, userAgent string) bool
}

// Mailer relays contact submissions to the configured admin address.
type Mailer interface {
	// Enabled reports whether an SMTP relay is configured
	Enabled() bool

	// SendContactNotification forwards one contact message to the admin inbox
	SendContactNotification(ctx context.Context, message domain.ContactMessage) error
}
