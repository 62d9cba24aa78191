package http

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vladmironov/linkcut/internal/auth"
	"github.com/vladmironov/linkcut/internal/metrics"
	"github.com/vladmironov/linkcut/internal/models"
)

type URLService interface {
	ShortenURL(ctx context.Context, longURL string) (*models.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error)
	ListURLs(ctx context.Context) ([]*models.URL, error)
}

type UserService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error)
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "pong")
}

func NewRouter(logger *httplog.Logger, urlSvc URLService, userSvc UserService, tokens *auth.TokenService, collector *metrics.Collector) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/metrics", collector.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		validate := getValidate()

		r.Get("/ping", handlePing)

		r.Route("/urls", func(r chi.Router) {
			r.Get("/{shortCode}", handleRedirect(urlSvc, collector))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth(tokens))

				r.Post("/shorten", handleShortenURL(urlSvc, validate, collector))
				r.Get("/", handleListURLs(urlSvc))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handleRegister(userSvc, validate, collector))
			r.Get("/activate/{token}", handleActivate(userSvc))
			r.Post("/login", handleLogin(userSvc, validate, collector))
			r.Post("/forgot-password", handleForgotPassword(userSvc, validate))
			r.Post("/reset-password/{token}", handleResetPassword(userSvc, validate))
		})
	})

	return r
}
