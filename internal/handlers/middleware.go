package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"moodimello/internal/security"
	"moodimello/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	issuer *security.TokenIssuer
	host   *service.HostService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(issuer *security.TokenIssuer, host *service.HostService) *Middleware {
	return &Middleware{
		issuer: issuer,
		host:   host,
	}
}

// RequireSession is middleware that requires a valid child session token
func (m *Middleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := security.TokenFromRequest(r)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		claims, err := m.issuer.Verify(token)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r))
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		// The token can outlive the session when it was ended or expired
		session, err := m.host.Session(claims.Subject)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r))
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s %s", security.GetClientIP(r), r.Method, r.URL.Path, time.Since(start))
	})
}

// GetSessionFromContext retrieves the child session from the request context
func GetSessionFromContext(ctx context.Context) *service.ChildSession {
	session, ok := ctx.Value(SessionContextKey).(*service.ChildSession)
	if !ok {
		return nil
	}
	return session
}
