package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/finlog/finlog-be/internal/auth"
	"github.com/finlog/finlog-be/internal/http/respond"
	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/models/dto"
	"github.com/finlog/finlog-be/internal/storage"
	"github.com/finlog/finlog-be/internal/validation"
)

// createAttempts bounds id/token regeneration when a generated credential
// collides with a stored one.
const createAttempts = 3

// UserHandler owns registration, login, and the user collection routes.
type UserHandler struct {
	store storage.UserStore
	creds *auth.Credentials
}

// NewUserHandler constructs the handler.
func NewUserHandler(store storage.UserStore, creds *auth.Credentials) *UserHandler {
	return &UserHandler{store: store, creds: creds}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/create_user/", h.handleCreateUser)
	mux.HandleFunc("/login/", h.handleLogin)
	mux.HandleFunc("/get_all_users/", h.handleGetAllUsers)
	mux.HandleFunc("/users/", h.handleUsers)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		respond.FieldErrors(w, http.StatusBadRequest, "Invalid data provided", errs)
		return
	}

	passwordHash, err := h.creds.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	var created models.User
	for attempt := 0; attempt < createAttempts; attempt++ {
		token, err := auth.IssueToken()
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to issue token")
			return
		}
		user := models.User{
			UserID:          auth.IssueUserID(),
			Name:            strings.TrimSpace(req.Name),
			PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
			ProfileImg:      req.ProfileImg,
			Age:             *req.Age,
			BankAccountName: strings.TrimSpace(req.BankAccountName),
			Token:           token,
			Password:        passwordHash,
		}
		created, err = h.store.CreateUser(r.Context(), user)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, storage.ErrPhoneTaken):
			respond.FieldErrors(w, http.StatusBadRequest, "Invalid data provided", validation.Errors{
				"phone_number": {"user with this phone number already exists."},
			})
			return
		case errors.Is(err, storage.ErrCredentialCollision):
			continue
		default:
			log.Printf("create user error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
	}
	if created.UserID == "" {
		respond.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respond.Success(w, http.StatusCreated, "User created successfully", map[string]any{
		"user_id":      created.UserID,
		"token":        created.Token,
		"name":         created.Name,
		"phone_number": created.PhoneNumber,
		"profile_img":  created.ProfileImg,
	})
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Phone number and password are required")
		return
	}

	user, err := h.store.FindByPhone(r.Context(), strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found with this phone number")
			return
		}
		log.Printf("login failed: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if !h.creds.VerifyPassword(req.Password, user.Password) {
		respond.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	// No new token on login; the token issued at registration stays stable.
	respond.Success(w, http.StatusOK, "Login successful", map[string]any{
		"user_id":           user.UserID,
		"token":             user.Token,
		"name":              user.Name,
		"phone_number":      user.PhoneNumber,
		"age":               user.Age,
		"bank_account_name": user.BankAccountName,
		"profile_img":       user.ProfileImg,
	})
}

func (h *UserHandler) handleGetAllUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	data := make([]map[string]any, 0, len(users))
	for _, user := range users {
		data = append(data, user.Summary())
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Users retrieved successfully",
		"total_users": len(data),
		"data":        data,
	})
}

// handleUsers serves the token-authenticated user collection:
// GET /users/ list, GET/PUT/DELETE /users/{id}.
func (h *UserHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	if _, status, msg := authenticateToken(h.store, r); status != 0 {
		respond.Error(w, status, msg)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users"), "/")
	switch {
	case id == "" && r.Method == http.MethodGet:
		h.handleGetAllUsers(w, r)
	case id == "":
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	default:
		h.handleUserDetail(w, r, id)
	}
}

func (h *UserHandler) handleUserDetail(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		target, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.respondUserLookupError(w, err)
			return
		}
		respond.Success(w, http.StatusOK, "User retrieved successfully", target.Summary())
	case http.MethodPut:
		h.handleUpdateUser(w, r, id)
	case http.MethodDelete:
		// Deleting a user deletes every transaction it owns.
		if err := h.store.DeleteUser(r.Context(), id); err != nil {
			h.respondUserLookupError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		respond.FieldErrors(w, http.StatusBadRequest, "Invalid data provided", errs)
		return
	}

	current, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.respondUserLookupError(w, err)
		return
	}

	password := current.Password
	if req.Password != "" {
		// EnsureHashed guards against re-hashing an already-hashed value.
		password, err = h.creds.EnsureHashed(req.Password)
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
	}

	updated, err := h.store.UpdateUser(r.Context(), models.User{
		UserID:          id,
		Name:            strings.TrimSpace(req.Name),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		ProfileImg:      req.ProfileImg,
		Age:             *req.Age,
		BankAccountName: strings.TrimSpace(req.BankAccountName),
		Password:        password,
	})
	if err != nil {
		if errors.Is(err, storage.ErrPhoneTaken) {
			respond.FieldErrors(w, http.StatusBadRequest, "Invalid data provided", validation.Errors{
				"phone_number": {"user with this phone number already exists."},
			})
			return
		}
		h.respondUserLookupError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, "User updated successfully", updated.Summary())
}

func (h *UserHandler) respondUserLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	log.Printf("user store error: %v", err)
	respond.Error(w, http.StatusInternalServerError, "Unexpected storage error")
}
