package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/finlog/finlog-be/internal/http/respond"
	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/models/dto"
	"github.com/finlog/finlog-be/internal/storage"
	"github.com/finlog/finlog-be/internal/validation"
)

// ItemHandler owns the token-authenticated generic item collection.
type ItemHandler struct {
	users storage.UserStore
	store storage.ItemStore
}

// NewItemHandler constructs the handler.
func NewItemHandler(users storage.UserStore, store storage.ItemStore) *ItemHandler {
	return &ItemHandler{users: users, store: store}
}

// Register attaches item routes to the mux.
func (h *ItemHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/items/", h.handleItems)
}

func (h *ItemHandler) handleItems(w http.ResponseWriter, r *http.Request) {
	if _, status, msg := authenticateToken(h.users, r); status != 0 {
		respond.Error(w, status, msg)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/items"), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Item not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleRetrieve(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ItemHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListItems(r.Context())
	if err != nil {
		log.Printf("list items error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respond.Success(w, http.StatusOK, "Items retrieved successfully", items)
}

func (h *ItemHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	created, err := h.store.CreateItem(r.Context(), models.Item{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	})
	if err != nil {
		log.Printf("create item error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to create item")
		return
	}
	respond.Success(w, http.StatusCreated, "Item created successfully", created)
}

func (h *ItemHandler) handleRetrieve(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := h.store.GetItem(r.Context(), id)
	if err != nil {
		h.respondItemError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, "Item retrieved successfully", item)
}

func (h *ItemHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	updated, err := h.store.UpdateItem(r.Context(), models.Item{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	})
	if err != nil {
		h.respondItemError(w, err)
		return
	}
	respond.Success(w, http.StatusOK, "Item updated successfully", updated)
}

func (h *ItemHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.store.DeleteItem(r.Context(), id); err != nil {
		h.respondItemError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) decodeItem(w http.ResponseWriter, r *http.Request) (dto.ItemRequest, bool) {
	var req dto.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return req, false
	}
	if errs := validation.Struct(req); errs != nil {
		respond.FieldErrors(w, http.StatusBadRequest, "Invalid data provided", errs)
		return req, false
	}
	return req, true
}

func (h *ItemHandler) respondItemError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Item not found")
		return
	}
	log.Printf("item store error: %v", err)
	respond.Error(w, http.StatusInternalServerError, "Unexpected storage error")
}
