// Storefront settings: the settings screen reads the whole record, edits it
// and writes it back.
package shop

import (
	"strings"

	"github.com/dukaforge/storefront/pkg/types"
)

// UpdateStorefront replaces a storefront record by id.
func (s *Service) UpdateStorefront(sf types.Storefront) error {
	if strings.TrimSpace(sf.Name) == "" {
		return types.ErrStoreNameRequired
	}

	stores := s.repo.Storefronts()
	for i := range stores {
		if stores[i].ID == sf.ID {
			stores[i] = sf
			s.repo.SaveStorefronts(stores)
			s.pushAsync(types.StorefrontsCollection, asAny(stores))
			return nil
		}
	}
	return types.ErrNotFound
}
