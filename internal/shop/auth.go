// Sign-in and sign-out. Passwords are compared as opaque strings; the
// singleton session slots hold snapshot copies, not live references.
package shop

import (
	"strings"

	"github.com/dukaforge/storefront/pkg/types"
)

// Login signs a merchant in by normalized email and password. The matched
// account is snapshotted into the session slot.
func (s *Service) Login(email, password string) (*types.Account, error) {
	want := types.NormalizeEmail(email)
	for _, a := range s.repo.Accounts() {
		if types.NormalizeEmail(a.Email) == want && a.Password == strings.TrimSpace(password) {
			account := a
			s.repo.SetCurrentAccount(&account)
			return &account, nil
		}
	}
	return nil, types.ErrBadCredentials
}

// Logout clears the merchant session slot.
func (s *Service) Logout() {
	s.repo.SetCurrentAccount(nil)
}

// CustomerLogin signs a customer in by normalized email and password.
func (s *Service) CustomerLogin(email, password string) (*types.Customer, error) {
	want := types.NormalizeEmail(email)
	for _, c := range s.repo.Customers() {
		if types.NormalizeEmail(c.Email) == want && c.Password == strings.TrimSpace(password) {
			customer := c
			s.repo.SetCurrentCustomer(&customer)
			return &customer, nil
		}
	}
	return nil, types.ErrBadCredentials
}

// CustomerLogout clears the customer session slot.
func (s *Service) CustomerLogout() {
	s.repo.SetCurrentCustomer(nil)
}
