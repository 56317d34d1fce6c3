package tokenauth

import (
	"context"
	"net/http"
	"strings"

	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/user/domain"
)

// UserResolver maps a presented bearer token to the user holding it.
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (domain.User, error)
}

type contextKey string

const userKey contextKey = "current_user"

// Middleware gates a handler behind bearer-token authentication. A missing
// or malformed Authorization header, or a token no user holds, answers 401
// before the wrapped handler runs. On success the resolved user rides the
// request context.
func Middleware(resolver UserResolver, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("token auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(raw, "Bearer ")
			if token == "" {
				log.Warnf("token auth failed path=%s: empty token", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				log.Warnf("token auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user attached by Middleware.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

// WithUser is a test seam for handlers that expect an authenticated context.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
