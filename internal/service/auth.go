// Package service holds the business logic between the HTTP handlers and
// the repository / auth / upstream-client layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/sakif/gitcompare/internal/apperror"
	"github.com/sakif/gitcompare/internal/auth"
	"github.com/sakif/gitcompare/internal/model"
	"github.com/sakif/gitcompare/internal/repository"
)

// invalidCredentialsMsg is the single message for every login failure.
// Whether the email is unknown or the password is wrong, the caller sees
// this exact string — anything more specific enables user enumeration.
const invalidCredentialsMsg = "invalid email or password"

// AuthService implements signup, login, and token authentication.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult bundles the issued token with the identity it belongs to,
// so the handler can build the login response in one step.
type LoginResult struct {
	Identity *model.Identity
	Token    string
}

// Signup registers a new identity.
//
// Validation failures and duplicates both come back as typed errors
// (ErrValidation / ErrConflict). The duplicate check here is best-effort;
// the store's uniqueness constraint is what actually decides a race
// between two concurrent signups for the same email or username.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*model.Identity, error) {
	if err := validateSignup(username, email, password); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return nil, apperror.Conflict("user with this email or username already exists")
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/auth: checking for existing user: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	identity := &model.Identity{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("service/auth: creating user %s: %w", username, err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", identity.ID),
		slog.String("username", identity.Username),
	)

	return identity, nil
}

// Login verifies the credentials and issues a 24-hour session token whose
// subject is the email.
//
// An unknown email and a wrong password return the identical error; the
// two cases are indistinguishable from the outside.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentialsMsg)
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(identity.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized(invalidCredentialsMsg)
	}

	token, err := s.tokens.Generate(identity.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for %s: %w", identity.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", identity.ID))

	return &LoginResult{Identity: identity, Token: token}, nil
}

// Authenticate resolves a session token to the identity it belongs to.
//
// Every failure — bad signature, expired, malformed, subject no longer in
// the store — collapses into one undifferentiated unauthorized error.
// The specific cause is logged at debug level, never returned.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	email, err := s.tokens.Validate(token)
	if err != nil {
		s.logger.Debug("token validation failed", slog.String("error", err.Error()))
		return nil, apperror.Unauthorized("invalid authentication credentials")
	}

	identity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("token subject not found", slog.String("email", email))
		return nil, apperror.Unauthorized("invalid authentication credentials")
	}

	return identity, nil
}

// validateSignup rejects malformed input before any side effect.
func validateSignup(username, email, password string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperror.ValidationFailed("email", "invalid email address")
	}
	return nil
}
