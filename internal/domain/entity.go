package domain

import (
	"context"
	"time"
)

// Entity is a tenant whose treasury is being simulated. Every store record is
// scoped by an entity id.
type Entity struct {
	ID        string    `json:"id"`
	LegalName string    `json:"legalName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is a logged-in demo user. It scopes requests to an entity and names
// the actor on audit records.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	EntityID  string    `json:"entityId"`
	LoginTime time.Time `json:"loginTime"`
}

type sessionContextKey struct{}

// WithSession attaches the session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session attached by the HTTP middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}

// EntityIDFromContext returns the active entity id, or "" when no session is
// attached.
func EntityIDFromContext(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok {
		return s.EntityID
	}
	return ""
}

// ActorFromContext returns the acting user's email, or SystemActor when the
// request carries no user.
func ActorFromContext(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok && s.Email != "" {
		return s.Email
	}
	return SystemActor
}
