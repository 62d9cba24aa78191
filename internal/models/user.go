package models

import "time"

// User represents a registered account. PasswordHash holds the bcrypt hash;
// the plaintext password is never stored.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	// Active reports whether the account completed email activation.
	// Only active users can log in.
	Active bool
	// ActivationToken is present only before activation and is cleared
	// on successful token exchange.
	ActivationToken        string
	ActivationTokenExpires time.Time
	// ResetPasswordToken and ResetPasswordExpires are present only while
	// a password reset is in flight; both are cleared on successful reset.
	ResetPasswordToken   string
	ResetPasswordExpires time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
