package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vladmironov/linkcut/internal/auth"
	"github.com/vladmironov/linkcut/internal/database"
	"github.com/vladmironov/linkcut/internal/models"
)

const (
	activationTokenTTL = 24 * time.Hour
	resetTokenTTL      = time.Hour
	tokenBytes         = 20
)

// ErrInvalidCredentials is returned on login for an unknown email, an
// inactive account or a wrong password. The three cases are deliberately
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines the interface for working with users at the business logic layer.
type UserRepository interface {
	// Create inserts a new inactive user. Returns database.ErrUserExists
	// when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Activate marks the user holding a valid activation token as active
	// and clears the token.
	Activate(ctx context.Context, token string) (*models.User, error)

	// SetResetToken stores a reset token and its expiry on the user with
	// the given email.
	SetResetToken(ctx context.Context, email, token string, expires time.Time) (*models.User, error)

	// ResetPassword stores a new password hash for the user holding a
	// valid reset token, clearing the token.
	ResetPassword(ctx context.Context, token, passwordHash string) (*models.User, error)

	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error
}

// Mailer dispatches account lifecycle emails.
type Mailer interface {
	SendActivationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

// UserService implements registration, activation and the credential
// lifecycle on top of the repository, hasher, token issuer and mailer.
type UserService struct {
	repo      UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	mailer    Mailer
}

func NewUserService(repo UserRepository, passwords *auth.PasswordService, tokens *auth.TokenService, mailer Mailer) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		mailer:    mailer,
	}
}

// Register creates an inactive user and dispatches the activation email.
// If the email cannot be dispatched the created user is removed again, so a
// failed registration can simply be retried.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	const op = "service.UserService.Register"

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate activation token: %w", op, err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		FirstName:              firstName,
		LastName:               lastName,
		Email:                  email,
		PasswordHash:           hash,
		ActivationToken:        token,
		ActivationTokenExpires: time.Now().Add(activationTokenTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	if err := s.mailer.SendActivationEmail(ctx, user.Email, token); err != nil {
		if delErr := s.repo.Delete(ctx, user.ID); delErr != nil {
			return nil, fmt.Errorf("%s: failed to roll back user after email dispatch failure: %w", op, delErr)
		}

		return nil, fmt.Errorf("%s: failed to send activation email: %w", op, err)
	}

	return user, nil
}

// Activate exchanges an activation token for an active account. The token is
// single-use: a second exchange with the same token fails.
func (s *UserService) Activate(ctx context.Context, token string) error {
	const op = "service.UserService.Activate"

	if _, err := s.repo.Activate(ctx, token); err != nil {
		return fmt.Errorf("%s: failed to activate user: %w", op, err)
	}

	return nil
}

// Login verifies the credentials and issues a signed bearer token. Unknown
// email, inactive account and wrong password all collapse to
// ErrInvalidCredentials so the response never reveals which check failed.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.UserService.Login"

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if !user.Active {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: failed to issue token: %w", op, err)
	}

	return token, nil
}

// ForgotPassword stores a reset token on the user and dispatches the reset
// email. The token expires one hour after issuance.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	const op = "service.UserService.ForgotPassword"

	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("%s: failed to generate reset token: %w", op, err)
	}

	user, err := s.repo.SetResetToken(ctx, email, token, time.Now().Add(resetTokenTTL))
	if err != nil {
		return fmt.Errorf("%s: failed to set reset token: %w", op, err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		return fmt.Errorf("%s: failed to send reset email: %w", op, err)
	}

	return nil
}

// ResetPassword exchanges a valid, unexpired reset token for a new password.
// The token is cleared on success, so replaying it fails.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "service.UserService.ResetPassword"

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.ResetPassword(ctx, token, hash); err != nil {
		return fmt.Errorf("%s: failed to reset password: %w", op, err)
	}

	return nil
}

// generateToken returns a cryptographically random, hex-encoded opaque token
// for activation and reset links.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
