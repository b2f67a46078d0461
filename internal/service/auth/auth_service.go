package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"betpromo/internal/domain"
	"betpromo/pkg/errors"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
)

// ErrBadCredentials is the collapsed login failure. Whether the email is
// unknown, the password wrong, or both, the caller sees this one message.
var ErrBadCredentials = errors.NewAuthenticationError("Email ou mot de passe incorrect")

// ErrAccountDisabled rejects credentials that verified against a
// deactivated account.
var ErrAccountDisabled = errors.NewAuthorizationError("Ce compte a été désactivé")

// Authenticator verifies a credential pair against one PocketBase
// credential table.
type Authenticator interface {
	AuthWithPassword(ctx context.Context, collection, identity, password string) (*pocketbase.AuthResponse, error)
}

// Directory records login times on back-office accounts.
type Directory interface {
	TouchLastLogin(ctx context.Context, id, when string)
}

// Session is a successful login: the resolved actor plus the signed token
// the client presents on subsequent admin calls.
type Session struct {
	Identity domain.Identity `json:"identity"`
	Token    string          `json:"token"`
	Expires  time.Time       `json:"expires"`
}

// Service resolves logins against the two credential tables and mints the
// session tokens consumed by the admin middleware.
type Service struct {
	authenticator Authenticator
	directory     Directory
	logger        *logger.Logger
	secret        []byte
	maxAge        time.Duration
	now           func() time.Time
}

// NewService creates a new session service.
func NewService(authenticator Authenticator, directory Directory, secret string, maxAge time.Duration, log *logger.Logger) *Service {
	return &Service{
		authenticator: authenticator,
		directory:     directory,
		logger:        log,
		secret:        []byte(secret),
		maxAge:        maxAge,
		now:           time.Now,
	}
}

// WithClock overrides the time source (used by tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// authRecord is the credential-record subset both tables share.
type authRecord struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Login verifies an email/password pair. Regular accounts are tried first,
// then the superuser table; superusers are always admins. Deactivated
// accounts are rejected even with valid credentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := s.authenticator.AuthWithPassword(ctx, pocketbase.CollectionUsers, email, password)
	if err == nil {
		return s.regularSession(ctx, resp)
	}
	s.logger.WithField("email", email).Debug("Regular credential check failed, trying superusers")

	resp, err = s.authenticator.AuthWithPassword(ctx, pocketbase.CollectionSuperusers, email, password)
	if err != nil {
		s.logger.WithField("email", email).Info("Login rejected")
		return nil, ErrBadCredentials
	}

	var record authRecord
	if err := json.Unmarshal(resp.Record, &record); err != nil {
		return nil, errors.NewInternalError("Failed to decode credential record", err)
	}

	identity := domain.Identity{
		Kind:  domain.IdentitySuperuser,
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  domain.RoleAdmin,
	}
	return s.mint(identity)
}

func (s *Service) regularSession(ctx context.Context, resp *pocketbase.AuthResponse) (*Session, error) {
	var record authRecord
	if err := json.Unmarshal(resp.Record, &record); err != nil {
		return nil, errors.NewInternalError("Failed to decode credential record", err)
	}

	if record.Status == domain.StatusInactive {
		s.logger.WithField("user_id", record.ID).Info("Login rejected, account deactivated")
		return nil, ErrAccountDisabled
	}

	identity := domain.Identity{
		Kind:  domain.IdentityRegularUser,
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  domain.NormalizedRole(record.Role),
	}

	if s.directory != nil {
		s.directory.TouchLastLogin(ctx, record.ID, s.now().UTC().Format(time.RFC3339))
	}
	return s.mint(identity)
}

// sessionClaims is the JWT payload of a minted session token.
type sessionClaims struct {
	Email string              `json:"email"`
	Name  string              `json:"name"`
	Role  string              `json:"role"`
	Kind  domain.IdentityKind `json:"kind"`
	jwt.RegisteredClaims
}

func (s *Service) mint(identity domain.Identity) (*Session, error) {
	expires := s.now().Add(s.maxAge)
	claims := sessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		Kind:  identity.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.NewInternalError("Failed to sign session token", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": identity.ID,
		"kind":    identity.Kind,
		"role":    identity.Role,
	}).Info("Session opened")

	return &Session{Identity: identity, Token: token, Expires: expires}, nil
}

// Verify parses a session token and returns the identity it carries.
func (s *Service) Verify(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAuthenticationError("Unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, errors.NewAuthenticationError("Invalid or expired session")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.NewAuthenticationError("Invalid or expired session")
	}

	return &domain.Identity{
		Kind:  claims.Kind,
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  domain.NormalizedRole(claims.Role),
	}, nil
}
