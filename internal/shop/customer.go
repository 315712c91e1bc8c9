// Customer signup and the single post-creation amendment (saved address and
// delivery preference).
package shop

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/dukaforge/storefront/pkg/types"
)

// codeVerifyCeiling bounds the remote lookup during store code
// verification. Past it, signup proceeds on local data alone.
const codeVerifyCeiling = 4 * time.Second

// CustomerSignup is the customer registration form.
type CustomerSignup struct {
	Name      string
	Email     string
	Password  string
	StoreCode string
}

// RegisterCustomer creates a customer bound to a storefront by code. The
// code is resolved locally first, then against the remote mirror under a
// fixed ceiling. Duplicate normalized emails are rejected before any write.
func (s *Service) RegisterCustomer(ctx context.Context, in CustomerSignup) (*types.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, types.ErrNameRequired
	}
	if !govalidator.IsEmail(strings.TrimSpace(in.Email)) {
		return nil, types.ErrInvalidEmail
	}
	if len(strings.TrimSpace(in.Password)) < 4 {
		return nil, types.ErrPasswordTooShort
	}

	code := types.NormalizeStoreCode(in.StoreCode)
	storefront := s.mirror.VerifyStoreCode(ctx, code, codeVerifyCeiling)
	if storefront == nil {
		return nil, types.ErrStoreCodeUnknown
	}

	email := types.NormalizeEmail(in.Email)
	customers := s.repo.Customers()
	for _, c := range customers {
		if types.NormalizeEmail(c.Email) == email {
			return nil, types.ErrEmailTaken
		}
	}

	customer := types.Customer{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Password:  strings.TrimSpace(in.Password),
		StoreCode: code,
		StoreID:   storefront.ID,
	}
	customers = append(customers, customer)
	s.repo.SaveCustomers(customers)
	s.pushAsync(types.CustomersCollection, asAny(customers))

	s.repo.SetCurrentCustomer(&customer)
	return &customer, nil
}

// SaveCustomerAddress merges a saved address and delivery preference into an
// existing customer. This is the only mutation customers receive after
// creation.
func (s *Service) SaveCustomerAddress(customerID, address, deliveryMode string) error {
	customers := s.repo.Customers()
	found := false
	for i := range customers {
		if customers[i].ID == customerID {
			if address != "" {
				customers[i].Address = address
			}
			if deliveryMode != "" {
				customers[i].DeliveryMode = deliveryMode
			}
			found = true

			if current := s.repo.CurrentCustomer(); current != nil && current.ID == customerID {
				updated := customers[i]
				s.repo.SetCurrentCustomer(&updated)
			}
			break
		}
	}
	if !found {
		return types.ErrNotFound
	}
	s.repo.SaveCustomers(customers)
	s.pushAsync(types.CustomersCollection, asAny(customers))
	return nil
}
