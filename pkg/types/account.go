package types

import "strings"

// Account is a merchant sign-in record. StoreID is a weak reference to the
// Storefront the account owns; it may be stale or absent, and the repair
// engine restores it lazily at read time.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	StoreID  string `json:"storeId,omitempty"`
}

// NormalizeEmail lower-cases and trims an email address. Normalized email is
// the identity key for email-keyed collections and for duplicate checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
