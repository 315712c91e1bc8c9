// This file implements the pull-and-merge half of replication. The merge is
// strictly additive: remote records fill gaps, local records always win.
package mirror

import (
	"context"
	"encoding/json"

	"github.com/dukaforge/storefront/pkg/types"
)

// mergeByKey appends remote records whose identity key is absent from the
// local sequence. Local records are never replaced or reordered; records
// with an empty key cannot be matched and are appended as-is.
func mergeByKey[T any](local, remote []T, key func(T) string) []T {
	seen := make(map[string]bool, len(local))
	for _, rec := range local {
		if k := key(rec); k != "" {
			seen[k] = true
		}
	}
	merged := local
	for _, rec := range remote {
		k := key(rec)
		if k != "" && seen[k] {
			continue
		}
		if k != "" {
			seen[k] = true
		}
		merged = append(merged, rec)
	}
	return merged
}

// decodeAll unmarshals pulled payloads into T, dropping records that do not
// decode.
func decodeAll[T any](records []json.RawMessage) []T {
	out := make([]T, 0, len(records))
	for _, raw := range records {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Reconcile pulls all five collections from the remote backend and merges
// each into its local counterpart additively. Per-table failures are logged
// and do not stop the remaining tables; the first failure is returned for
// inspection. Local data is never overwritten.
func (a *Adapter) Reconcile(ctx context.Context) *SyncError {
	if !a.Enabled() {
		return nil
	}

	var first *SyncError

	pull := func(table string) []json.RawMessage {
		records, err := a.Pull(ctx, table)
		if err != nil {
			if first == nil {
				first = err
			}
			a.log.WithField("table", table).Warn("pull failed, keeping local data")
			return nil
		}
		return records
	}

	if raw := pull(types.AccountsCollection); len(raw) > 0 {
		merged := mergeByKey(a.repo.Accounts(), decodeAll[types.Account](raw),
			func(rec types.Account) string { return rec.ID })
		a.repo.SaveAccounts(merged)
	}
	if raw := pull(types.StorefrontsCollection); len(raw) > 0 {
		merged := mergeByKey(a.repo.Storefronts(), decodeAll[types.Storefront](raw),
			func(rec types.Storefront) string { return rec.ID })
		a.repo.SaveStorefronts(merged)
	}
	if raw := pull(types.ProductsCollection); len(raw) > 0 {
		merged := mergeByKey(a.repo.Products(), decodeAll[types.Product](raw),
			func(rec types.Product) string { return rec.ID })
		a.repo.SaveProducts(merged)
	}
	if raw := pull(types.OrdersCollection); len(raw) > 0 {
		merged := mergeByKey(a.repo.Orders(), decodeAll[types.Order](raw),
			func(rec types.Order) string { return rec.ID })
		a.repo.SaveOrders(merged)
	}
	if raw := pull(types.CustomersCollection); len(raw) > 0 {
		merged := mergeByKey(a.repo.Customers(), decodeAll[types.Customer](raw),
			func(rec types.Customer) string { return types.NormalizeEmail(rec.Email) })
		a.repo.SaveCustomers(merged)
	}

	return first
}
