package handlers

import (
	"net/http"

	"github.com/finlog/finlog-be/internal/http/respond"
)

// RootHandler serves the API route directory and 404s everything the mux
// did not match.
type RootHandler struct{}

// Register wires the handler into a ServeMux.
func (h *RootHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handle)
}

func (h *RootHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"create_user":        "/create_user/",
		"login":              "/login/",
		"get_all_users":      "/get_all_users/",
		"create_transaction": "/create_transaction/",
		"users":              "/users/",
		"items":              "/items/",
	})
}
