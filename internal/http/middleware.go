package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/http/handlers"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/notifier"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())

		// 'verbose' enables debug logging for this request only, through the context logger.
		logger := log.Default()
		if r.URL.Query().Get("verbose") == "true" {
			logger = logger.With()
			logger.SetLevel(log.DebugLevel)
		}
		ctx := log.WithContext(r.Context(), logger)

		// 'dry_run' travels in the context down to the notifiers.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx = notifier.WithDryRun(ctx, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Debug("request finished", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// sessionMiddleware verifies the bearer token and stores the session in the request
// context. With required set, requests without a valid session are rejected; otherwise an
// invalid or missing token simply leaves the request anonymous.
func sessionMiddleware(verifier identity.SessionVerifier, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if required {
					handlers.WriteError(w, identity.ErrInvalidSession)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			session, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.FromContext(r.Context()).Debug("Rejected bearer token", "error", err)
				if required {
					handlers.WriteError(w, identity.ErrInvalidSession)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithSession(r.Context(), session)))
		})
	}
}

// adminMiddleware only lets sessions holding the admin role through. It must run after
// sessionMiddleware.
func adminMiddleware(profiles identity.ProfileStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := identity.SessionFromContext(r.Context())
			if !ok {
				handlers.WriteError(w, identity.ErrInvalidSession)
				return
			}
			isAdmin, err := profiles.HasRole(r.Context(), session.UserID, identity.RoleAdmin)
			if err != nil {
				handlers.WriteError(w, err)
				return
			}
			if !isAdmin {
				log.Warn("Rejected non-admin request", "userID", session.UserID, "path", r.URL.Path)
				http.Error(w, "admin role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// pushTokenMiddleware only accepts push deliveries carrying the shared ?token= secret.
// An empty secret rejects every request.
func pushTokenMiddleware(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.URL.Query().Get("token")
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Warn("Rejected push delivery", "remoteAddr", r.RemoteAddr)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
