package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vladmironov/linkcut/internal/database"
	"github.com/vladmironov/linkcut/internal/metrics"
	"github.com/vladmironov/linkcut/internal/service"
	"github.com/vladmironov/linkcut/pkg/response"
)

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// decodeAndValidate binds the JSON body into req and validates it, writing
// the error response itself. Returns false when the request was rejected.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.EmptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.BadRequestResponse)
		return false
	}

	if err := validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationErrorResponse(err))
		return false
	}

	return true
}

// handleRegister handles POST requests to register a new account.
//
// The account starts inactive; an activation email with a one-time token is
// dispatched before the handler responds.
func handleRegister(svc UserService, validate *validator.Validate, collector *metrics.Collector) http.HandlerFunc {
	const op = "api.http.handleRegister"
	const successMsg = "Activation email sent."

	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		_, err := svc.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, database.ErrUserExists) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Conflict", "A user with this email already exists."))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		collector.RecordRegistration()

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// handleActivate handles GET requests to exchange an activation token.
func handleActivate(svc UserService) http.HandlerFunc {
	const op = "api.http.handleActivate"
	const successMsg = "Account activated successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		if err := svc.Activate(r.Context(), token); err != nil {
			if errors.Is(err, database.ErrTokenNotFound) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Token", "The activation token is invalid or has expired."))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// handleLogin handles POST requests to exchange credentials for a bearer token.
//
// Unknown email, inactive account and wrong password all produce the same
// response, so the endpoint can't be used to enumerate accounts.
func handleLogin(svc UserService, validate *validator.Validate, collector *metrics.Collector) http.HandlerFunc {
	const op = "api.http.handleLogin"
	const successMsg = "Logged in successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Credentials", "Invalid email or password."))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		collector.RecordLogin()

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, tokenResponse{Token: token}))
	}
}

// handleForgotPassword handles POST requests to start a password reset.
func handleForgotPassword(svc UserService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleForgotPassword"
	const successMsg = "Password reset email sent."

	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			if errors.Is(err, database.ErrUserNotFound) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("User Not Found", "No user exists with this email."))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// handleResetPassword handles POST requests to complete a password reset.
func handleResetPassword(svc UserService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleResetPassword"
	const successMsg = "Password has been reset successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		token := chi.URLParam(r, "token")

		if err := svc.ResetPassword(r.Context(), token, req.Password); err != nil {
			if errors.Is(err, database.ErrTokenNotFound) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ErrorResponse("Invalid Token", "The reset token is invalid or has expired."))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}
