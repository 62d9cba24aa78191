package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const defaultCost = 12

// ErrPasswordMismatch is returned when a password doesn't match the stored hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordService hashes and verifies passwords with bcrypt. The cost is
// injectable so tests can use the minimum cost instead of the production one.
type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost is intended for tests. bcrypt.MinCost keeps
// hashing fast; never use it in production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

func (s *PasswordService) Hash(password string) (string, error) {
	const op = "auth.PasswordService.Hash"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	return string(hash), nil
}

func (s *PasswordService) Verify(hash, password string) error {
	const op = "auth.PasswordService.Verify"

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	return nil
}
