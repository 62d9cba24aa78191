package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladmironov/linkcut/internal/database"
	"github.com/vladmironov/linkcut/internal/models"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository.
	Create(ctx context.Context, shortCode, longURL string) (*models.URL, error)

	// GetByLongURL retrieves a URL by its original long URL.
	GetByLongURL(ctx context.Context, longURL string) (*models.URL, error)

	// Resolve retrieves a URL by its short code, incrementing its click
	// counter atomically at the store.
	Resolve(ctx context.Context, shortCode string) (*models.URL, error)

	// GetAll retrieves every stored mapping in storage-native order.
	GetAll(ctx context.Context) ([]*models.URL, error)
}

// URLService provides methods to manage URL shortening operations.
type URLService struct {
	repo            URLRepository
	shortCodeLength int
}

// NewURLService creates a new instance of URLService with the provided repository and short code length.
func NewURLService(repo URLRepository, shortCodeLength int) *URLService {
	return &URLService{
		repo:            repo,
		shortCodeLength: shortCodeLength,
	}
}

// ShortenURL returns the mapping for the provided long URL, creating one if
// none exists. Shortening the same long URL twice returns the same record:
// no new short code is minted for a repeat.
//
// On a miss it generates a short code and stores the mapping, retrying with
// a longer code when the generated one collides, up to a maximum number of
// retries.
func (s *URLService) ShortenURL(ctx context.Context, longURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"
	const maxRetries = 5

	url, err := s.repo.GetByLongURL(ctx, longURL)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, database.ErrURLNotFound) {
		return nil, fmt.Errorf("%s: failed to look up long url: %w", op, err)
	}

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.New(s.shortCodeLength + i)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := s.repo.Create(ctx, shortCode, longURL)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode retrieves the original URL associated with the provided
// short code and records the click. The increment is persisted before the
// mapping is returned, so a redirect is never issued for a lost update.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.repo.Resolve(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// ListURLs retrieves every stored mapping.
func (s *URLService) ListURLs(ctx context.Context) ([]*models.URL, error) {
	const op = "service.URLService.ListURLs"

	urls, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}
