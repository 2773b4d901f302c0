package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/finlog/finlog-be/internal/models"
	"github.com/finlog/finlog-be/internal/storage"
)

// memStore is an in-memory storage.Store used to exercise handlers without
// a database. It enforces the same uniqueness rules as the Postgres store.
type memStore struct {
	mu           sync.Mutex
	users        map[string]models.User
	transactions map[int64]models.Transaction
	items        map[int64]models.Item
	nextTxnID    int64
	nextItemID   int64

	// error injection for exercising InternalError paths
	listUsersErr   error
	findByPhoneErr error
}

var _ storage.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]models.User),
		transactions: make(map[int64]models.Transaction),
		items:        make(map[int64]models.Item),
	}
}

func (m *memStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.PhoneNumber == user.PhoneNumber {
			return models.User{}, storage.ErrPhoneTaken
		}
		if existing.Token == user.Token {
			return models.User{}, storage.ErrCredentialCollision
		}
	}
	if _, ok := m.users[user.UserID]; ok {
		return models.User{}, storage.ErrCredentialCollision
	}
	m.users[user.UserID] = user
	return user, nil
}

func (m *memStore) FindByPhone(_ context.Context, phone string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByPhoneErr != nil {
		return models.User{}, m.findByPhoneErr
	}
	for _, user := range m.users {
		if user.PhoneNumber == phone {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memStore) FindByToken(_ context.Context, token string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Token == token {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memStore) FindByID(_ context.Context, userID string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listUsersErr != nil {
		return nil, m.listUsersErr
	}
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (m *memStore) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.users[user.UserID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	for id, existing := range m.users {
		if id != user.UserID && existing.PhoneNumber == user.PhoneNumber {
			return models.User{}, storage.ErrPhoneTaken
		}
	}
	user.Token = current.Token
	m.users[user.UserID] = user
	return user, nil
}

func (m *memStore) DeleteUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.users, userID)
	for id, txn := range m.transactions {
		if txn.UserID == userID {
			delete(m.transactions, id)
		}
	}
	return nil
}

func (m *memStore) CreateTransaction(_ context.Context, txn models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[txn.UserID]; !ok {
		return models.Transaction{}, storage.ErrNotFound
	}
	m.nextTxnID++
	txn.ID = m.nextTxnID
	m.transactions[txn.ID] = txn
	return txn, nil
}

func (m *memStore) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextItemID++
	item.ID = m.nextItemID
	m.items[item.ID] = item
	return item, nil
}

func (m *memStore) GetItem(_ context.Context, id int64) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return models.Item{}, storage.ErrNotFound
	}
	return item, nil
}

func (m *memStore) ListItems(_ context.Context) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (m *memStore) UpdateItem(_ context.Context, item models.Item) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.items[item.ID]
	if !ok {
		return models.Item{}, storage.ErrNotFound
	}
	current.Title = item.Title
	current.Description = item.Description
	m.items[item.ID] = current
	return current, nil
}

func (m *memStore) DeleteItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) failListUsers(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listUsersErr = err
}

func (m *memStore) failFindByPhone(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findByPhoneErr = err
}

func (m *memStore) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

func (m *memStore) storedUser(userID string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	return user, ok
}
