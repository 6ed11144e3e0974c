package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

// Session is the authenticated identity resolved for a single request.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires"`
}

// Identifier returns the user id, falling back to the email.
func (s *Session) Identifier() string {
	if s == nil {
		return ""
	}
	if s.UserID != "" {
		return s.UserID
	}
	return s.Email
}

// ContextWithSession stores the resolved session; a nil session marks the request
// as unauthenticated.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, session)
}

func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(ContextSessionKey).(*Session); ok {
		return s
	}
	return nil
}
