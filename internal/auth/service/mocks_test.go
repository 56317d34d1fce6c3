package service_test

import (
	"context"

	"github.com/rakhimovb/staylist/internal/common/logger"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
	userrepo "github.com/rakhimovb/staylist/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) error
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByTokenFunc func(ctx context.Context, token string) (userdomain.User, error)
	updateTokenFunc func(ctx context.Context, id userdomain.ID, token string) error
	clearTokenFunc  func(ctx context.Context, id userdomain.ID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByToken(ctx context.Context, token string) (userdomain.User, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdateToken(ctx context.Context, id userdomain.ID, token string) error {
	if m.updateTokenFunc != nil {
		return m.updateTokenFunc(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepo) ClearToken(ctx context.Context, id userdomain.ID) error {
	if m.clearTokenFunc != nil {
		return m.clearTokenFunc(ctx, id)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash == "hashed:"+password {
		return nil
	}
	return errMismatch
}

type mockIDGen struct {
	id string
}

func (m *mockIDGen) NewID() (string, error) {
	if m.id != "" {
		return m.id, nil
	}
	return "id-1", nil
}

type mockTokenGen struct {
	token string
}

func (m *mockTokenGen) NewToken() (string, error) {
	if m.token != "" {
		return m.token, nil
	}
	return "token-1", nil
}

func newTestLogger() *logger.Logger {
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		panic(err)
	}
	return log
}
