package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users, transactions,
// and items.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_details (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			profile_img TEXT,
			age INT NOT NULL CHECK (age BETWEEN 1 AND 150),
			bank_account_name TEXT NOT NULL,
			token TEXT NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS user_details_phone_number_idx ON user_details (phone_number);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS user_details_token_idx ON user_details (token);`,
		`CREATE TABLE IF NOT EXISTS transaction_details (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user_details(user_id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
			transaction_type TEXT NOT NULL,
			description TEXT,
			category TEXT,
			date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			recurring_frequency TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS transaction_details_user_id_idx ON transaction_details (user_id);`,
		`CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const userColumns = `user_id, name, phone_number, profile_img, age, bank_account_name, token, password`

// CreateUser inserts a new user row. Uniqueness conflicts are translated
// into typed errors so callers can tell a taken phone number apart from a
// generated-credential collision.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO user_details (user_id, name, phone_number, profile_img, age, bank_account_name, token, password)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + userColumns + `;`

	row := s.pool.QueryRow(ctx, query,
		user.UserID, user.Name, user.PhoneNumber, user.ProfileImg,
		user.Age, user.BankAccountName, user.Token, user.Password)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, mapUserConflict(err)
	}
	return created, nil
}

// FindByPhone fetches a user by exact phone-number match.
func (s *Store) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_details WHERE phone_number = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, phone))
}

// FindByToken resolves a bearer token to exactly one user.
func (s *Store) FindByToken(ctx context.Context, token string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_details WHERE token = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, token))
}

// FindByID fetches a user by its opaque id.
func (s *Store) FindByID(ctx context.Context, userID string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_details WHERE user_id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, userID))
}

// ListUsers returns all users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user_details ORDER BY name;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser overwrites the mutable fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	UPDATE user_details
	SET name = $2, phone_number = $3, profile_img = $4, age = $5, bank_account_name = $6, password = $7
	WHERE user_id = $1
	RETURNING ` + userColumns + `;`

	row := s.pool.QueryRow(ctx, query,
		user.UserID, user.Name, user.PhoneNumber, user.ProfileImg,
		user.Age, user.BankAccountName, user.Password)
	updated, err := scanUser(row)
	if err != nil {
		return models.User{}, mapUserConflict(err)
	}
	return updated, nil
}

// DeleteUser removes a user and every transaction it owns. The cascade is
// explicit so the invariant holds even without the FK constraint.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_details WHERE user_id = $1;`, userID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM user_details WHERE user_id = $1;`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit(ctx)
}

// CreateTransaction inserts a transaction row owned by an existing user.
func (s *Store) CreateTransaction(ctx context.Context, txn models.Transaction) (models.Transaction, error) {
	const query = `
	INSERT INTO transaction_details (user_id, amount, transaction_type, description, category, date, is_recurring, recurring_frequency)
	VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8)
	RETURNING id, user_id, amount::text, transaction_type, description, category, date, is_recurring, recurring_frequency;`

	row := s.pool.QueryRow(ctx, query,
		txn.UserID, txn.Amount.StringFixed(2), txn.TransactionType,
		txn.Description, txn.Category, txn.Date, txn.IsRecurring, txn.RecurringFrequency)
	return scanTransaction(row)
}

// CreateItem inserts an item.
func (s *Store) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	const query = `
	INSERT INTO items (title, description)
	VALUES ($1, $2)
	RETURNING id, title, description, created_at, updated_at;`
	return scanItem(s.pool.QueryRow(ctx, query, item.Title, item.Description))
}

// GetItem fetches a single item by id.
func (s *Store) GetItem(ctx context.Context, id int64) (models.Item, error) {
	const query = `SELECT id, title, description, created_at, updated_at FROM items WHERE id = $1;`
	return scanItem(s.pool.QueryRow(ctx, query, id))
}

// ListItems returns all items, newest first.
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	const query = `SELECT id, title, description, created_at, updated_at FROM items ORDER BY created_at DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites an item's title and description.
func (s *Store) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	const query = `
	UPDATE items SET title = $2, description = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING id, title, description, created_at, updated_at;`
	return scanItem(s.pool.QueryRow(ctx, query, item.ID, item.Title, item.Description))
}

// DeleteItem removes an item by id.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func mapUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "phone_number") {
			return storage.ErrPhoneTaken
		}
		return storage.ErrCredentialCollision
	}
	return err
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Name, &user.PhoneNumber, &user.ProfileImg,
		&user.Age, &user.BankAccountName, &user.Token, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var txn models.Transaction
	var amount string
	err := row.Scan(&txn.ID, &txn.UserID, &amount, &txn.TransactionType,
		&txn.Description, &txn.Category, &txn.Date, &txn.IsRecurring, &txn.RecurringFrequency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, storage.ErrNotFound
		}
		return models.Transaction{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	txn.Amount = parsed
	return txn, nil
}

func scanItem(row pgx.Row) (models.Item, error) {
	var item models.Item
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Item{}, storage.ErrNotFound
		}
		return models.Item{}, err
	}
	return item, nil
}
