package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hrms-api/internal/authz"
	"github.com/hrms-api/internal/domain"
)

type contextKey int

const actorKey contextKey = iota

// Authenticator resolves a bearer token to the calling employee.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}

// WithActor stores the authenticated actor in ctx.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the actor stored by RequireAuth.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// RequireAuth rejects requests without a valid bearer token. The onError
// callback writes the error response so the envelope matches the handlers'.
func RequireAuth(authn Authenticator, onError func(http.ResponseWriter, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				onError(w, domain.ErrUnauthenticated)
				return
			}

			actor, err := authn.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				onError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireOperation rejects callers whose role may not perform op before the
// handler reads the request body. It must run inside RequireAuth.
func RequireOperation(op authz.Operation, onError func(http.ResponseWriter, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ := ActorFrom(r.Context())
			if err := authz.Authorize(actor, op); err != nil {
				onError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
