package storage

import (
	"context"
	"errors"

	"github.com/finlog/finlog-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrPhoneTaken indicates a phone-number uniqueness conflict.
var ErrPhoneTaken = errors.New("phone number already registered")

// ErrCredentialCollision indicates a generated user id or token collided
// with a stored one. Callers regenerate and retry.
var ErrCredentialCollision = errors.New("credential collision")

// UserStore captures user persistence needed by the handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByPhone(ctx context.Context, phone string) (models.User, error)
	FindByToken(ctx context.Context, token string) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// TransactionStore persists financial events.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

// ItemStore captures the generic item collection.
type ItemStore interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// Store is the full persistence surface the server wires up.
type Store interface {
	UserStore
	TransactionStore
	ItemStore
}
