package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlog/finlog-be/internal/http/respond"
	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/models/dto"
	"github.com/finlog/finlog-be/internal/storage"
	"github.com/finlog/finlog-be/internal/validation"
)

// TransactionHandler owns the token-authorized transaction creation flow.
type TransactionHandler struct {
	users storage.UserStore
	store storage.TransactionStore
}

// NewTransactionHandler constructs the handler.
func NewTransactionHandler(users storage.UserStore, store storage.TransactionStore) *TransactionHandler {
	return &TransactionHandler{users: users, store: store}
}

// Register attaches transaction routes to the mux.
func (h *TransactionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/create_transaction/", h.handleCreateTransaction)
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, status, msg := authenticateToken(h.users, r)
	if status != 0 {
		respond.Error(w, status, msg)
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if req.Amount == "" || req.TransactionType == "" {
		respond.Error(w, http.StatusBadRequest, "amount and transaction_type are required fields")
		return
	}
	if errs := validation.Struct(req); errs != nil {
		respond.FieldErrors(w, http.StatusBadRequest, "Invalid transaction data", errs)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD HH:MM:SS")
			return
		}
		date = parsed
	}

	amount, err := decimal.NewFromString(string(req.Amount))
	if err != nil {
		// validation.Struct already rejected unparseable amounts
		respond.Error(w, http.StatusBadRequest, "A valid number is required.")
		return
	}

	created, err := h.store.CreateTransaction(r.Context(), models.Transaction{
		UserID:             user.UserID,
		Amount:             amount,
		TransactionType:    req.TransactionType,
		Description:        req.Description,
		Category:           req.Category,
		Date:               date,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
	})
	if err != nil {
		log.Printf("create transaction error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	respond.Success(w, http.StatusCreated, "Transaction created successfully", created.Canonical())
}
