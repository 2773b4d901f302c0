package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types accepted by the API. Matching is case-sensitive.
const (
	TransactionIncome   = "INCOME"
	TransactionExpense  = "EXPENSE"
	TransactionTransfer = "TRANSFER"
	TransactionRefund   = "REFUND"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02 15:04:05"

// Transaction is a single immutable financial event owned by a user.
type Transaction struct {
	ID                 int64
	UserID             string
	Amount             decimal.Decimal
	TransactionType    string
	Description        *string
	Category           *string
	Date               time.Time
	IsRecurring        bool
	RecurringFrequency *string
}

// Canonical returns the response representation of a transaction: the
// amount rendered with two fractional digits and the date in DateLayout.
func (t Transaction) Canonical() map[string]any {
	return map[string]any{
		"id":                  t.ID,
		"user_id":             t.UserID,
		"amount":              t.Amount.StringFixed(2),
		"transaction_type":    t.TransactionType,
		"description":         t.Description,
		"category":            t.Category,
		"date":                t.Date.Format(DateLayout),
		"is_recurring":        t.IsRecurring,
		"recurring_frequency": t.RecurringFrequency,
	}
}
