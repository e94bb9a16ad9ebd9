package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/errs"
)

var (
	ErrLoadingSigningSecret = errors.New("error loading auth signing secret")
	ErrInvalidSession       = errors.New("session token is not valid")
	ErrSessionExpired       = errors.New("session has expired")
)

// Claims is the session token payload. ActorID is set only for superadmin
// impersonation sessions and names the admin driving the session.
type Claims struct {
	jwt.RegisteredClaims

	ActorID string `json:"act,omitempty"`
}

// Session is a verified token.
type Session struct {
	TenantID uuid.UUID

	// ActorID is the impersonating superadmin, uuid.Nil otherwise.
	ActorID uuid.UUID
}

func (s Session) Impersonated() bool {
	return s.ActorID != uuid.Nil
}

// Sessions mints and verifies the signed session cookies.
type Sessions struct {
	secret []byte
	cfg    config.Auth
}

func NewSessions(cfg config.Auth) (*Sessions, error) {
	secret, err := commoncfg.LoadValueFromSourceRef(cfg.SigningSecret)
	if err != nil {
		return nil, errs.Wrap(ErrLoadingSigningSecret, err)
	}

	return &Sessions{
		secret: secret,
		cfg:    cfg,
	}, nil
}

// Issue mints a session token for the tenant.
func (s *Sessions) Issue(tenantID uuid.UUID) (string, error) {
	return s.sign(tenantID, uuid.Nil, s.cfg.SessionTTL)
}

// IssueImpersonation mints a short-lived token acting as the target tenant
// while recording the superadmin as the actor.
func (s *Sessions) IssueImpersonation(targetID, actorID uuid.UUID) (string, error) {
	return s.sign(targetID, actorID, s.cfg.ImpersonationTTL)
}

func (s *Sessions) sign(tenantID, actorID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tenantID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	if actorID != uuid.Nil {
		claims.ActorID = actorID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string.
func (s *Sessions) Verify(token string) (*Session, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}

		return s.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionExpired
	} else if err != nil || !parsed.Valid {
		return nil, errs.Wrap(ErrInvalidSession, err)
	}

	tenantID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidSession, err)
	}

	session := &Session{TenantID: tenantID}

	if claims.ActorID != "" {
		actorID, err := uuid.Parse(claims.ActorID)
		if err != nil {
			return nil, errs.Wrap(ErrInvalidSession, err)
		}

		session.ActorID = actorID
	}

	return session, nil
}

// SetCookie writes the session cookie onto the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest extracts and verifies the session cookie.
func (s *Sessions) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidSession, err)
	}

	return s.Verify(cookie.Value)
}

// CookieName exposes the configured cookie name.
func (s *Sessions) CookieName() string {
	return s.cfg.CookieName
}

// SessionTTL exposes the configured session lifetime.
func (s *Sessions) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

// ImpersonationTTL exposes the configured impersonation lifetime.
func (s *Sessions) ImpersonationTTL() time.Duration {
	return s.cfg.ImpersonationTTL
}
