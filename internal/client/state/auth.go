package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rakhimovb/staylist/internal/client/api"
)

const tokenFileName = "token"

// AuthStore holds the session state. The token is persisted to a file under
// the user config dir so the session survives restarts; Authenticated()
// derives from token presence alone.
type AuthStore struct {
	client *api.Client

	mu       sync.RWMutex
	user     api.User
	loading  bool
	err      string
	onChange []func()

	tokenPath string
}

func NewAuthStore(client *api.Client) *AuthStore {
	return &AuthStore{
		client:    client,
		tokenPath: defaultTokenPath(),
	}
}

func defaultTokenPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "staylist", tokenFileName)
}

// RestoreSession loads a previously persisted token, if any.
func (s *AuthStore) RestoreSession() {
	if s.tokenPath == "" {
		return
	}
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return
	}
	s.client.SetToken(string(data))
	s.notify()
}

func (s *AuthStore) persistToken(token string) {
	if s.tokenPath == "" {
		return
	}
	if token == "" {
		_ = os.Remove(s.tokenPath)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.tokenPath, []byte(token), 0o600)
}

func (s *AuthStore) Signup(ctx context.Context, email, password, confirmation string) error {
	s.begin()

	user, err := s.client.Signup(ctx, email, password, confirmation)
	if err != nil {
		s.fail(err)
		return err
	}

	s.client.SetToken(user.Token)
	s.persistToken(user.Token)
	s.succeed(user)
	return nil
}

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.begin()

	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}

	s.client.SetToken(user.Token)
	s.persistToken(user.Token)
	s.succeed(user)
	return nil
}

func (s *AuthStore) Logout(ctx context.Context) error {
	s.begin()

	err := s.client.Logout(ctx)
	// The session ends locally even when the server call fails.
	s.client.SetToken("")
	s.persistToken("")
	if err != nil {
		s.fail(err)
		return err
	}
	s.succeed(api.User{})
	return nil
}

func (s *AuthStore) Authenticated() bool {
	return s.client.Token() != ""
}

func (s *AuthStore) CurrentUser() api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *AuthStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *AuthStore) succeed(user api.User) {
	s.mu.Lock()
	s.loading = false
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *AuthStore) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = normalizeError(err)
	s.mu.Unlock()
	s.notify()
}

func (s *AuthStore) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.onChange))
	copy(listeners, s.onChange)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// normalizeError flattens an API error into the string the UI shows inline;
// validation message lists are joined for display.
func normalizeError(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
