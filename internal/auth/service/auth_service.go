package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	commoncrypto "github.com/rakhimovb/staylist/internal/common/crypto"
	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
	"github.com/rakhimovb/staylist/internal/common/logger"
	"github.com/rakhimovb/staylist/internal/observability/metrics"
	userdomain "github.com/rakhimovb/staylist/internal/user/domain"
	userrepo "github.com/rakhimovb/staylist/internal/user/repository"
)

type AuthService struct {
	repo     userrepo.Repository
	hasher   commoncrypto.PasswordHasher
	idGen    commoncrypto.IDGenerator
	tokenGen commoncrypto.TokenGenerator
	validate *validator.Validate
	now      func() time.Time
	log      *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGen commoncrypto.IDGenerator,
	tokenGen commoncrypto.TokenGenerator,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		idGen:    idGen,
		tokenGen: tokenGen,
		validate: newValidator(),
		now:      time.Now,
		log:      log,
	}
}

type SignupInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
}

type LoginInput struct {
	Email    string
	Password string
}

// AccountResult is what the session endpoints return: the identity plus the
// freshly minted bearer token.
type AccountResult struct {
	ID    string
	Email string
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AccountResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if msgs := validateSignup(s.validate, input); msgs != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_validation_failed",
		}).Warnf("signup validation failed: %v", msgs)
		return AccountResult{}, msgs
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return AccountResult{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return AccountResult{}, err
	}

	token, err := s.tokenGen.NewToken()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_token_mint_failed",
		}).Errorf("signup failed: token mint error: %v", err)
		return AccountResult{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        input.Email,
		PasswordHash: hash,
		Token:        &token,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_taken",
			}).Warn("signup failed: email taken")
			return AccountResult{}, commonerrors.ValidationErrors{"Email has already been taken"}
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AccountResult{}, err
	}

	metrics.AuthTokensIssued.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")

	return AccountResult{ID: string(user.ID), Email: user.Email, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AccountResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			metrics.AuthFailedLogins.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return AccountResult{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AccountResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.AuthFailedLogins.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return AccountResult{}, commonerrors.ErrInvalidCredentials
	}

	token, err := s.tokenGen.NewToken()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_token_mint_failed",
		}).Errorf("login failed: token mint error: %v", err)
		return AccountResult{}, err
	}

	if err := s.repo.UpdateToken(ctx, user.ID, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_store_failed",
		}).Errorf("login failed: token store error: %v", err)
		return AccountResult{}, err
	}

	metrics.AuthTokensIssued.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AccountResult{ID: string(user.ID), Email: user.Email, Token: token}, nil
}

// Logout clears the caller's token, invalidating it for every future
// request. There is no rotation or expiry: clearing is the only way a token
// stops working.
func (s *AuthService) Logout(ctx context.Context, user userdomain.User) error {
	if err := s.repo.ClearToken(ctx, user.ID); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "logout_failed",
		}).Errorf("logout failed: %v", err)
		return err
	}

	metrics.AuthTokensCleared.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "logout_success",
	}).Info("logout success")
	return nil
}

// ResolveToken implements tokenauth.UserResolver against the credential
// store.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (userdomain.User, error) {
	if token == "" {
		return userdomain.User{}, commonerrors.ErrUnauthorized
	}

	user, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, commonerrors.ErrUnauthorized
		}
		return userdomain.User{}, err
	}

	return user, nil
}
