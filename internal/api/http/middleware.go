package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/vladmironov/linkcut/internal/auth"
	"github.com/vladmironov/linkcut/pkg/response"
)

// requireAuth gates protected routes behind a bearer token. On success the
// authenticated user's ID is stored in the request context.
func requireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.UnauthorizedResponse)
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.UnauthorizedResponse)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
