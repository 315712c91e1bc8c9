// Order capture from the public checkout flow. Orders are append-only:
// nothing in the system edits one after this point.
package shop

import (
	"strings"
	"time"

	"github.com/dukaforge/storefront/pkg/types"
)

// PlaceOrder appends a checkout order. Totals are computed by the checkout
// collaborator and stored as given. Validation failures reject the order
// before any write.
func (s *Service) PlaceOrder(o types.Order) (types.Order, error) {
	if o.StoreID == "" {
		return types.Order{}, types.ErrInvalidData
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return types.Order{}, types.ErrNameRequired
	}
	if len(o.Items) == 0 {
		return types.Order{}, types.ErrEmptyOrder
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 || item.ProductID == "" {
			return types.Order{}, types.ErrInvalidData
		}
	}

	o.ID = newID()
	o.CreatedAt = time.Now().UTC()

	orders := append(s.repo.Orders(), o)
	s.repo.SaveOrders(orders)
	s.pushAsync(types.OrdersCollection, asAny(orders))
	return o, nil
}

// StoreOrders lists the orders received by one storefront.
func (s *Service) StoreOrders(storeID string) []types.Order {
	var out []types.Order
	for _, o := range s.repo.Orders() {
		if o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out
}
