package http

import (
	"errors"
	"net/http"

	"github.com/stretchr/testify/mock"
	"github.com/vladmironov/linkcut/internal/database"
	"github.com/vladmironov/linkcut/internal/models"
	"github.com/vladmironov/linkcut/internal/service"
	"github.com/vladmironov/linkcut/pkg/response"
)

func (suite *HandlersTestSuite) TestRegister() {
	const path = "/api/users/register"

	validBody := map[string]string{
		"first_name": "John",
		"last_name":  "Doe",
		"email":      "john.doe@example.com",
		"password":   "qwerty123456",
	}

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"first_name": "John",
				"email":      "not-an-email",
				"password":   "short",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("email already taken", func() {
		suite.userSvcMock.
			On("Register", mock.Anything, "John", "Doe", "john.doe@example.com", "qwerty123456").
			Times(1).
			Return(nil, database.ErrUserExists)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Conflict").
			HasValue("message", "A user with this email already exists.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Register", 1)
	})

	suite.Run("server error", func() {
		suite.userSvcMock.
			On("Register", mock.Anything, "John", "Doe", "john.doe@example.com", "qwerty123456").
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Register", 1)
	})

	suite.Run("success", func() {
		suite.userSvcMock.
			On("Register", mock.Anything, "John", "Doe", "john.doe@example.com", "qwerty123456").
			Times(1).
			Return(&models.User{
				ID:    1,
				Email: "john.doe@example.com",
			}, nil)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			HasValue("message", "Activation email sent.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Register", 1)
	})
}

func (suite *HandlersTestSuite) TestActivate() {
	const path = "/api/users/activate/sometoken"

	suite.Run("invalid token", func() {
		suite.userSvcMock.
			On("Activate", mock.Anything, "sometoken").
			Times(1).
			Return(database.ErrTokenNotFound)

		suite.e.GET(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Invalid Token").
			HasValue("message", "The activation token is invalid or has expired.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Activate", 1)
	})

	suite.Run("server error", func() {
		suite.userSvcMock.
			On("Activate", mock.Anything, "sometoken").
			Times(1).
			Return(errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Activate", 1)
	})

	suite.Run("success", func() {
		suite.userSvcMock.
			On("Activate", mock.Anything, "sometoken").
			Times(1).
			Return(nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			HasValue("message", "Account activated successfully.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Activate", 1)
	})
}

func (suite *HandlersTestSuite) TestLogin() {
	const path = "/api/users/login"

	validBody := map[string]string{
		"email":    "john.doe@example.com",
		"password": "qwerty123456",
	}

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"email": "not-an-email",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("invalid credentials", func() {
		suite.userSvcMock.
			On("Login", mock.Anything, "john.doe@example.com", "qwerty123456").
			Times(1).
			Return("", service.ErrInvalidCredentials)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Invalid Credentials").
			HasValue("message", "Invalid email or password.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Login", 1)
	})

	suite.Run("server error", func() {
		suite.userSvcMock.
			On("Login", mock.Anything, "john.doe@example.com", "qwerty123456").
			Times(1).
			Return("", errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Login", 1)
	})

	suite.Run("success", func() {
		suite.userSvcMock.
			On("Login", mock.Anything, "john.doe@example.com", "qwerty123456").
			Times(1).
			Return("header.payload.signature", nil)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			HasValue("message", "Logged in successfully.").
			Value("data").Object().
			HasValue("token", "header.payload.signature")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "Login", 1)
	})
}

func (suite *HandlersTestSuite) TestForgotPassword() {
	const path = "/api/users/forgot-password"

	validBody := map[string]string{"email": "john.doe@example.com"}

	suite.Run("user not found", func() {
		suite.userSvcMock.
			On("ForgotPassword", mock.Anything, "john.doe@example.com").
			Times(1).
			Return(database.ErrUserNotFound)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "User Not Found").
			HasValue("message", "No user exists with this email.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ForgotPassword", 1)
	})

	suite.Run("server error", func() {
		suite.userSvcMock.
			On("ForgotPassword", mock.Anything, "john.doe@example.com").
			Times(1).
			Return(errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ForgotPassword", 1)
	})

	suite.Run("success", func() {
		suite.userSvcMock.
			On("ForgotPassword", mock.Anything, "john.doe@example.com").
			Times(1).
			Return(nil)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			HasValue("message", "Password reset email sent.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ForgotPassword", 1)
	})
}

func (suite *HandlersTestSuite) TestResetPassword() {
	const path = "/api/users/reset-password/sometoken"

	validBody := map[string]string{"password": "newpassword123"}

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"password": "short",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("invalid token", func() {
		suite.userSvcMock.
			On("ResetPassword", mock.Anything, "sometoken", "newpassword123").
			Times(1).
			Return(database.ErrTokenNotFound)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("error", "Invalid Token").
			HasValue("message", "The reset token is invalid or has expired.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ResetPassword", 1)
	})

	suite.Run("server error", func() {
		suite.userSvcMock.
			On("ResetPassword", mock.Anything, "sometoken", "newpassword123").
			Times(1).
			Return(errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ResetPassword", 1)
	})

	suite.Run("success", func() {
		suite.userSvcMock.
			On("ResetPassword", mock.Anything, "sometoken", "newpassword123").
			Times(1).
			Return(nil)

		suite.e.POST(path).
			WithJSON(validBody).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			HasValue("message", "Password has been reset successfully.")

		suite.userSvcMock.AssertNumberOfCalls(suite.T(), "ResetPassword", 1)
	})
}
