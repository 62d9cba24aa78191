package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vladmironov/linkcut/internal/models"
)

type MockURLService struct {
	mock.Mock
}

func (s *MockURLService) ShortenURL(ctx context.Context, longURL string) (*models.URL, error) {
	args := s.Called(ctx, longURL)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (s *MockURLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	args := s.Called(ctx, shortCode)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (s *MockURLService) ListURLs(ctx context.Context) ([]*models.URL, error) {
	args := s.Called(ctx)
	urls, _ := args.Get(0).([]*models.URL)
	return urls, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (s *MockUserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	args := s.Called(ctx, firstName, lastName, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (s *MockUserService) Activate(ctx context.Context, token string) error {
	args := s.Called(ctx, token)
	return args.Error(0)
}

func (s *MockUserService) Login(ctx context.Context, email, password string) (string, error) {
	args := s.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (s *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	args := s.Called(ctx, email)
	return args.Error(0)
}

func (s *MockUserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := s.Called(ctx, token, newPassword)
	return args.Error(0)
}
