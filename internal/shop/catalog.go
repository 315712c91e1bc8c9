// Catalog item management by the owning merchant.
package shop

import (
	"strings"

	"github.com/dukaforge/storefront/pkg/types"
)

// StoreProducts lists the catalog items of one storefront.
func (s *Service) StoreProducts(storeID string) []types.Product {
	var out []types.Product
	for _, p := range s.repo.Products() {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out
}

// AddProduct creates a catalog item for a storefront.
func (s *Service) AddProduct(storeID string, p types.Product) (types.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return types.Product{}, types.ErrNameRequired
	}
	if p.Price <= 0 || storeID == "" {
		return types.Product{}, types.ErrInvalidData
	}

	p.ID = newID()
	p.StoreID = storeID
	products := append(s.repo.Products(), p)
	s.repo.SaveProducts(products)
	s.pushAsync(types.ProductsCollection, asAny(products))
	return p, nil
}

// UpdateProduct replaces a catalog item by id.
func (s *Service) UpdateProduct(p types.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return types.ErrNameRequired
	}
	if p.Price <= 0 {
		return types.ErrInvalidData
	}

	products := s.repo.Products()
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			s.repo.SaveProducts(products)
			s.pushAsync(types.ProductsCollection, asAny(products))
			return nil
		}
	}
	return types.ErrNotFound
}

// DeleteProduct removes a catalog item by id.
func (s *Service) DeleteProduct(id string) error {
	products := s.repo.Products()
	kept := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return types.ErrNotFound
	}
	s.repo.SaveProducts(kept)
	s.pushAsync(types.ProductsCollection, asAny(kept))
	return nil
}
