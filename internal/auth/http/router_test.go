package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authhttp "github.com/rakhimovb/staylist/internal/auth/http"
	"github.com/rakhimovb/staylist/internal/auth/service"
	"github.com/rakhimovb/staylist/internal/common/logger"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
	userrepo "github.com/rakhimovb/staylist/internal/user/repository"
)

type stubUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByTokenFunc func(ctx context.Context, token string) (userdomain.User, error)
	clearTokenFunc  func(ctx context.Context, id userdomain.ID) error
}

func (s *stubUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if s.findByEmailFunc != nil {
		return s.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (s *stubUserRepo) FindByToken(ctx context.Context, token string) (userdomain.User, error) {
	if s.findByTokenFunc != nil {
		return s.findByTokenFunc(ctx, token)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (s *stubUserRepo) UpdateToken(ctx context.Context, id userdomain.ID, token string) error {
	return nil
}

func (s *stubUserRepo) ClearToken(ctx context.Context, id userdomain.ID) error {
	if s.clearTokenFunc != nil {
		return s.clearTokenFunc(ctx, id)
	}
	return nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Compare(hash string, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return http.ErrNoCookie
}

type stubIDGen struct{}

func (stubIDGen) NewID() (string, error) { return "id-1", nil }

type stubTokenGen struct{}

func (stubTokenGen) NewToken() (string, error) { return "token-1", nil }

func newHandler(repo *stubUserRepo) http.Handler {
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		panic(err)
	}
	svc := service.NewAuthService(repo, stubHasher{}, stubIDGen{}, stubTokenGen{}, log)
	return authhttp.NewHandler(svc, log)
}

func TestSignupEndpoint_Created(t *testing.T) {
	handler := newHandler(&stubUserRepo{})

	body := `{"user":{"email":"a@b.com","password":"secret123","password_confirmation":"secret123"}}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Token string `json:"authentication_token"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User.Email != "a@b.com" || resp.User.Token == "" {
		t.Errorf("unexpected response payload: %+v", resp.User)
	}
}

func TestSignupEndpoint_ValidationErrors(t *testing.T) {
	handler := newHandler(&stubUserRepo{})

	body := `{"user":{"email":"","password":"abc","password_confirmation":"abc"}}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected validation messages in the errors list")
	}
}

func TestSignupEndpoint_InvalidJSON(t *testing.T) {
	handler := newHandler(&stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	handler := newHandler(&stubUserRepo{})

	body := `{"email":"a@b.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Invalid email or password" {
		t.Errorf("expected generic credentials message, got %q", resp.Error)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	cleared := false
	repo := &stubUserRepo{
		findByTokenFunc: func(ctx context.Context, token string) (userdomain.User, error) {
			if token == "valid" {
				return userdomain.User{ID: "u1"}, nil
			}
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
		clearTokenFunc: func(ctx context.Context, id userdomain.ID) error {
			cleared = true
			return nil
		},
	}
	handler := newHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !cleared {
		t.Error("expected the stored token to be cleared")
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Logged out successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestLogoutEndpoint_WithoutToken(t *testing.T) {
	handler := newHandler(&stubUserRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
