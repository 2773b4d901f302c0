package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/storage"
)

// authenticateToken resolves the Authorization header to a stored user.
// A missing header and an unknown token produce the same 401 outcome.
func authenticateToken(store storage.UserStore, r *http.Request) (models.User, int, string) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Token ") {
		return models.User{}, http.StatusUnauthorized, "Authorization header with token is required"
	}
	token := strings.TrimPrefix(header, "Token ")

	user, err := store.FindByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, http.StatusUnauthorized, "Invalid token or user not found"
		}
		return models.User{}, http.StatusInternalServerError, "Failed to authenticate request"
	}
	return user, 0, ""
}
