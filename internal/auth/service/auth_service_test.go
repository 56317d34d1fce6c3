package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rakhimovb/staylist/internal/auth/service"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
	userrepo "github.com/rakhimovb/staylist/internal/user/repository"
)

var errMismatch = errors.New("password mismatch")

func newAuthService(repo *mockUserRepo) *service.AuthService {
	return service.NewAuthService(repo, &mockHasher{}, &mockIDGen{}, &mockTokenGen{}, newTestLogger())
}

func TestSignup_Success(t *testing.T) {
	var created userdomain.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) error {
			created = user
			return nil
		},
	}
	svc := newAuthService(repo)

	result, err := svc.Signup(context.Background(), service.SignupInput{
		Email:                "a@b.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token == "" {
		t.Error("expected a non-empty token")
	}
	if result.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %s", result.Email)
	}
	if created.PasswordHash == "secret123" || created.PasswordHash == "" {
		t.Errorf("expected password to be stored hashed, got %q", created.PasswordHash)
	}
	if created.Token == nil || *created.Token != result.Token {
		t.Error("expected the minted token to be stored with the user")
	}
}

func TestSignup_ValidationMessages(t *testing.T) {
	svc := newAuthService(&mockUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) error {
			t.Fatal("create must not be called for an invalid payload")
			return nil
		},
	})

	testCases := []struct {
		name     string
		input    service.SignupInput
		expected string
	}{
		{
			"blank email",
			service.SignupInput{Password: "secret123", PasswordConfirmation: "secret123"},
			"Email can't be blank",
		},
		{
			"malformed email",
			service.SignupInput{Email: "not-an-email", Password: "secret123", PasswordConfirmation: "secret123"},
			"Email is invalid",
		},
		{
			"blank password",
			service.SignupInput{Email: "a@b.com"},
			"Password can't be blank",
		},
		{
			"short password",
			service.SignupInput{Email: "a@b.com", Password: "abc", PasswordConfirmation: "abc"},
			"Password is too short (minimum is 6 characters)",
		},
		{
			"confirmation mismatch",
			service.SignupInput{Email: "a@b.com", Password: "secret123", PasswordConfirmation: "other"},
			"Password confirmation doesn't match Password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			messages, ok := commonerrors.AsValidationErrors(err)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if !containsMessage(messages, tc.expected) {
				t.Errorf("expected message %q in %v", tc.expected, messages)
			}
		})
	}
}

func TestSignup_CollectsAllViolations(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.Signup(context.Background(), service.SignupInput{})
	messages, ok := commonerrors.AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(messages) < 2 {
		t.Errorf("expected every violation reported at once, got %v", messages)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) error {
			return userrepo.ErrEmailAlreadyExists
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:                "a@b.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	})

	messages, ok := commonerrors.AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if !containsMessage(messages, "Email has already been taken") {
		t.Errorf("expected taken-email message, got %v", messages)
	}
}

func TestLogin_Success(t *testing.T) {
	var storedToken string
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: "u1", Email: email, PasswordHash: "hashed:secret123"}, nil
		},
		updateTokenFunc: func(ctx context.Context, id userdomain.ID, token string) error {
			storedToken = token
			return nil
		},
	}
	svc := newAuthService(repo)

	result, err := svc.Login(context.Background(), service.LoginInput{Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" || result.Token != storedToken {
		t.Errorf("expected the minted token to be stored, got %q vs %q", result.Token, storedToken)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: "u1", Email: email, PasswordHash: "hashed:secret123"}, nil
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "a@b.com", Password: "wrong"})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "nobody@b.com", Password: "secret123"})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	var clearedID userdomain.ID
	repo := &mockUserRepo{
		clearTokenFunc: func(ctx context.Context, id userdomain.ID) error {
			clearedID = id
			return nil
		},
	}
	svc := newAuthService(repo)

	if err := svc.Logout(context.Background(), userdomain.User{ID: "u1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if clearedID != "u1" {
		t.Errorf("expected token cleared for u1, got %q", clearedID)
	}
}

func TestResolveToken(t *testing.T) {
	repo := &mockUserRepo{
		findByTokenFunc: func(ctx context.Context, token string) (userdomain.User, error) {
			if token == "valid" {
				return userdomain.User{ID: "u1", Email: "a@b.com"}, nil
			}
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
	}
	svc := newAuthService(repo)

	user, err := svc.ResolveToken(context.Background(), "valid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected u1, got %s", user.ID)
	}

	if _, err := svc.ResolveToken(context.Background(), "stale"); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown token, got %v", err)
	}

	if _, err := svc.ResolveToken(context.Background(), ""); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func containsMessage(messages commonerrors.ValidationErrors, expected string) bool {
	for _, m := range messages {
		if m == expected {
			return true
		}
	}
	return false
}
