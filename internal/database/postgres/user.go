package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vladmironov/linkcut/internal/database"
	"github.com/vladmironov/linkcut/internal/models"
)

type userRecord struct {
	ID                     int64          `db:"id"`
	FirstName              string         `db:"first_name"`
	LastName               string         `db:"last_name"`
	Email                  string         `db:"email"`
	PasswordHash           string         `db:"password_hash"`
	Active                 bool           `db:"active"`
	ActivationToken        sql.NullString `db:"activation_token"`
	ActivationTokenExpires sql.NullTime   `db:"activation_token_expires"`
	ResetPasswordToken     sql.NullString `db:"reset_password_token"`
	ResetPasswordExpires   sql.NullTime   `db:"reset_password_expires"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

func (r *userRecord) ToUser() *models.User {
	return &models.User{
		ID:                     r.ID,
		FirstName:              r.FirstName,
		LastName:               r.LastName,
		Email:                  r.Email,
		PasswordHash:           r.PasswordHash,
		Active:                 r.Active,
		ActivationToken:        r.ActivationToken.String,
		ActivationTokenExpires: r.ActivationTokenExpires.Time,
		ResetPasswordToken:     r.ResetPasswordToken.String,
		ResetPasswordExpires:   r.ResetPasswordExpires.Time,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "database.postgres.UserRepository.Create"

	rec := new(userRecord)
	query := `INSERT INTO users(first_name, last_name, email, password_hash, activation_token, activation_token_expires)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.ActivationToken, user.ActivationTokenExpires)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserExists)
		}

		return nil, fmt.Errorf("%s: failed to create user record: %w", op, err)
	}

	return rec.ToUser(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "database.postgres.UserRepository.GetByEmail"

	rec := new(userRecord)
	query := `SELECT * FROM users
		WHERE email = $1`

	err := r.db.GetContext(ctx, rec, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get user record: %w", op, err)
	}

	return rec.ToUser(), nil
}

// Activate flips the account to active and clears the activation token in a
// single statement. The token must match and be unexpired, which makes a
// replay of a consumed token indistinguishable from an unknown one.
func (r *UserRepository) Activate(ctx context.Context, token string) (*models.User, error) {
	const op = "database.postgres.UserRepository.Activate"

	rec := new(userRecord)
	query := `UPDATE users
		SET active = TRUE, activation_token = NULL, activation_token_expires = NULL, updated_at = now()
		WHERE activation_token = $1 AND activation_token_expires > now()
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrTokenNotFound)
		}

		return nil, fmt.Errorf("%s: failed to activate user record: %w", op, err)
	}

	return rec.ToUser(), nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expires time.Time) (*models.User, error) {
	const op = "database.postgres.UserRepository.SetResetToken"

	rec := new(userRecord)
	query := `UPDATE users
		SET reset_password_token = $2, reset_password_expires = $3, updated_at = now()
		WHERE email = $1
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, email, token, expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to set reset token: %w", op, err)
	}

	return rec.ToUser(), nil
}

// ResetPassword stores the new hash and clears both reset fields where the
// token matches and is still valid. Clearing in the same statement enforces
// single use.
func (r *UserRepository) ResetPassword(ctx context.Context, token, passwordHash string) (*models.User, error) {
	const op = "database.postgres.UserRepository.ResetPassword"

	rec := new(userRecord)
	query := `UPDATE users
		SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
		WHERE reset_password_token = $1 AND reset_password_expires > now()
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, token, passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrTokenNotFound)
		}

		return nil, fmt.Errorf("%s: failed to reset password: %w", op, err)
	}

	return rec.ToUser(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const op = "database.postgres.UserRepository.Delete"

	query := `DELETE FROM users
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete user record: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
	}

	return nil
}
