package tokenauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/common/tokenauth"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
)

type resolverFunc func(ctx context.Context, token string) (userdomain.User, error)

func (f resolverFunc) ResolveToken(ctx context.Context, token string) (userdomain.User, error) {
	return f(ctx, token)
}

func newGate(t *testing.T, resolver tokenauth.UserResolver) func(http.Handler) http.Handler {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return tokenauth.Middleware(resolver, log)
}

func TestMiddleware_RejectsWithoutHeader(t *testing.T) {
	resolver := resolverFunc(func(ctx context.Context, token string) (userdomain.User, error) {
		t.Fatal("resolver must not run without a bearer header")
		return userdomain.User{}, nil
	})

	handler := newGate(t, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"bare token", "sometoken"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestMiddleware_RejectsUnknownToken(t *testing.T) {
	resolver := resolverFunc(func(ctx context.Context, token string) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrUnauthorized
	})

	handler := newGate(t, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_AttachesUser(t *testing.T) {
	resolver := resolverFunc(func(ctx context.Context, token string) (userdomain.User, error) {
		if token != "valid" {
			t.Errorf("expected token to be stripped of the Bearer prefix, got %q", token)
		}
		return userdomain.User{ID: "u1", Email: "a@b.com"}, nil
	})

	called := false
	handler := newGate(t, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := tokenauth.CurrentUser(r.Context())
		if !ok {
			t.Fatal("expected the user on the request context")
		}
		if user.ID != "u1" {
			t.Errorf("expected u1, got %s", user.ID)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected the wrapped handler to run")
	}
}
