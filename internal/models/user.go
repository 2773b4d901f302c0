package models

// User is the application-facing record for a registered account.
// Password holds the bcrypt hash after creation, never plaintext.
type User struct {
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	PhoneNumber     string  `json:"phone_number"`
	ProfileImg      *string `json:"profile_img"`
	Age             int     `json:"age"`
	BankAccountName string  `json:"bank_account_name"`
	Token           string  `json:"token"`
	Password        string  `json:"-"`
}

// Summary is the serializable view of a user returned by list and login
// responses. The password hash is never part of it.
func (u User) Summary() map[string]any {
	return map[string]any{
		"user_id":           u.UserID,
		"name":              u.Name,
		"phone_number":      u.PhoneNumber,
		"profile_img":       u.ProfileImg,
		"age":               u.Age,
		"bank_account_name": u.BankAccountName,
		"token":             u.Token,
	}
}
