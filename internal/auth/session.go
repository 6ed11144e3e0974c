package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of the session cookie.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity is what a successful sign-in hands to the session manager.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// SessionManager stores sessions client-side as HS256-signed JWT cookies.
type SessionManager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewSessionManager(secret, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		now:        time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Encode signs a new session token for id.
func (m *SessionManager) Encode(id Identity) (string, *internal.Session, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		Email: id.Email,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	return token, sessionFromClaims(claims), nil
}

// Decode verifies a session token.
func (m *SessionManager) Decode(token string) (*internal.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, internal.ErrInvalidSession.WithCause(err)
	}
	if !parsed.Valid {
		return nil, internal.ErrInvalidSession
	}
	return sessionFromClaims(claims), nil
}

// Issue signs a session for id and sets it on the response.
func (m *SessionManager) Issue(w http.ResponseWriter, id Identity) (*internal.Session, error) {
	token, session, err := m.Encode(id)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// Resolve returns the request's session, or nil when the cookie is missing,
// tampered with or expired.
func (m *SessionManager) Resolve(r *http.Request) *internal.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := m.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return session
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionFromClaims(c *Claims) *internal.Session {
	s := &internal.Session{
		ID:     c.ID,
		UserID: c.Subject,
		Email:  c.Email,
		Name:   c.Name,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
