package dto

import "strings"

// Amount carries a decimal amount from the wire. Clients send either a JSON
// string ("50.00") or a bare number; both decode to the raw literal so the
// validation layer can enforce precision on the exact input.
type Amount string

// UnmarshalJSON accepts both quoted and unquoted amount literals.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		s = ""
	}
	*a = Amount(s)
	return nil
}

type CreateUserRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	PhoneNumber     string  `json:"phone_number" validate:"required,phone"`
	ProfileImg      *string `json:"profile_img" validate:"omitempty,url"`
	Age             *int    `json:"age" validate:"required,min=1,max=150"`
	BankAccountName string  `json:"bank_account_name" validate:"required,max=100"`
	Password        string  `json:"password" validate:"required,max=128"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type CreateTransactionRequest struct {
	Amount             Amount  `json:"amount" validate:"required,amount"`
	TransactionType    string  `json:"transaction_type" validate:"required,transaction_type"`
	Description        *string `json:"description" validate:"omitempty,max=255"`
	Category           *string `json:"category" validate:"omitempty,max=100"`
	Date               string  `json:"date"`
	IsRecurring        bool    `json:"is_recurring"`
	RecurringFrequency *string `json:"recurring_frequency" validate:"omitempty,max=20"`
}

type UpdateUserRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	PhoneNumber     string  `json:"phone_number" validate:"required,phone"`
	ProfileImg      *string `json:"profile_img" validate:"omitempty,url"`
	Age             *int    `json:"age" validate:"required,min=1,max=150"`
	BankAccountName string  `json:"bank_account_name" validate:"required,max=100"`
	Password        string  `json:"password" validate:"omitempty,max=128"`
}

type ItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}
