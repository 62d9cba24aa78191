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

type urlRecord struct {
	ID        int64     `db:"id"`
	ShortCode string    `db:"short_code"`
	LongURL   string    `db:"long_url"`
	Clicks    int64     `db:"clicks"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *urlRecord) ToURL() *models.URL {
	return &models.URL{
		ID:        r.ID,
		ShortCode: r.ShortCode,
		LongURL:   r.LongURL,
		Clicks:    r.Clicks,
		CreatedAt: r.CreatedAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{
		db: db,
	}
}

func (r *URLRepository) Create(ctx context.Context, shortCode, longURL string) (*models.URL, error) {
	const op = "database.postgres.URLRepository.Create"

	rec := new(urlRecord)
	query := `INSERT INTO urls(short_code, long_url)
		VALUES ($1, $2)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, shortCode, longURL)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to create url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

func (r *URLRepository) GetByLongURL(ctx context.Context, longURL string) (*models.URL, error) {
	const op = "database.postgres.URLRepository.GetByLongURL"

	rec := new(urlRecord)
	query := `SELECT * FROM urls
		WHERE long_url = $1
		LIMIT 1`

	err := r.db.GetContext(ctx, rec, query, longURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

// Resolve increments the click counter and returns the updated record in a
// single statement. The increment happens at the store, so concurrent
// resolutions of the same short code never lose updates.
func (r *URLRepository) Resolve(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "database.postgres.URLRepository.Resolve"

	rec := new(urlRecord)
	query := `UPDATE urls
		SET clicks = clicks + 1
		WHERE short_code = $1
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, shortCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to resolve url record: %w", op, err)
	}

	return rec.ToURL(), nil
}

func (r *URLRepository) GetAll(ctx context.Context) ([]*models.URL, error) {
	const op = "database.postgres.URLRepository.GetAll"

	var recs []urlRecord
	query := `SELECT * FROM urls`

	err := r.db.SelectContext(ctx, &recs, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url records: %w", op, err)
	}

	urls := make([]*models.URL, 0, len(recs))
	for i := range recs {
		urls = append(urls, recs[i].ToURL())
	}

	return urls, nil
}
