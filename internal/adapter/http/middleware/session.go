package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

const (
	// SessionTokenHeader is the fallback header for session tokens.
	SessionTokenHeader = "X-Session-Token"

	bearerPrefix = "Bearer "
)

// SessionMiddleware resolves the session token into a request-scoped session.
// Requests without a token run against the default entity with the system
// actor, which keeps the API usable before anyone has logged in.
type SessionMiddleware struct {
	sessions        usecase.SessionStore
	defaultEntityID string
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionStore, defaultEntityID string) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:        sessions,
		defaultEntityID: defaultEntityID,
	}
}

// Wrap wraps an http.Handler with session resolution.
func (m *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			session := &domain.Session{EntityID: m.defaultEntityID}
			next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), session)))
			return
		}

		session, err := m.sessions.Get(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid session token"}`))
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"session lookup failed"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), session)))
	})
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}

	return r.Header.Get(SessionTokenHeader)
}
