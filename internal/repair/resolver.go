// Package repair restores the account/storefront ownership link lazily at
// read time. Registration writes the two sides of the relationship in two
// uncoordinated steps, so the link is expected to drift; resolution walks an
// ordered chain of strategies and persists whatever correction the winning
// strategy requires. Once corrected, later calls short-circuit on the owner
// match and perform no writes.
package repair

import (
	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/logger"
	"github.com/dukaforge/storefront/pkg/types"
)

// request carries the inputs of one resolution attempt.
type request struct {
	accountID       string
	declaredStoreID string
}

// match is a strategy's verdict: which storefront to bind, and which sides
// of the relationship need a correcting write.
type match struct {
	index      int  // index into the storefront collection
	fixOwner   bool // overwrite the storefront's OwnerID
	fixAccount bool // point the account's StoreID at the storefront
}

// strategy is one pure step of the resolution chain. It inspects the
// current collections and reports a match, or nil to pass to the next step.
type strategy struct {
	name string
	fn   func(req request, stores []types.Storefront) *match
}

// Resolver locates the storefront owned by an account, correcting broken
// links as a side effect.
type Resolver struct {
	repo       *store.Repository
	log        logger.Logger
	strategies []strategy
}

// NewResolver creates a Resolver with the standard strategy chain.
func NewResolver(repo *store.Repository, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{
		repo: repo,
		log:  log,
		strategies: []strategy{
			{"owner-match", matchOwner},
			{"declared-link", matchDeclaredLink},
			{"singleton-adoption", adoptSingleton},
			{"declared-link-repair", repairDeclaredLink},
			{"best-effort-adoption", adoptFirstAvailable},
		},
	}
}

// matchOwner finds a storefront already pointing back at the account. The
// healthy steady state; no write needed.
func matchOwner(req request, stores []types.Storefront) *match {
	for i := range stores {
		if stores[i].OwnerID == req.accountID {
			return &match{index: i}
		}
	}
	return nil
}

// matchDeclaredLink follows the account's declared StoreID and corrects the
// storefront's OwnerID when it disagrees.
func matchDeclaredLink(req request, stores []types.Storefront) *match {
	if req.declaredStoreID == "" {
		return nil
	}
	for i := range stores {
		if stores[i].ID == req.declaredStoreID {
			return &match{index: i, fixOwner: stores[i].OwnerID != req.accountID}
		}
	}
	return nil
}

// adoptSingleton binds the only storefront in existence unconditionally,
// correcting both sides of the relationship.
func adoptSingleton(req request, stores []types.Storefront) *match {
	if len(stores) != 1 {
		return nil
	}
	return &match{index: 0, fixOwner: true, fixAccount: true}
}

// repairDeclaredLink retries the declared link among multiple storefronts.
// Kept as a distinct step to preserve the chain's shape even though the
// earlier declared-link step covers the same ground.
func repairDeclaredLink(req request, stores []types.Storefront) *match {
	if len(stores) <= 1 || req.declaredStoreID == "" {
		return nil
	}
	for i := range stores {
		if stores[i].ID == req.declaredStoreID {
			return &match{index: i, fixOwner: true}
		}
	}
	return nil
}

// adoptFirstAvailable binds the first storefront that is unowned or owned
// by someone else. Heuristic, not authoritative: with several unclaimed
// storefronts there is no way to know which one belongs to this account,
// and iteration order decides.
func adoptFirstAvailable(req request, stores []types.Storefront) *match {
	for i := range stores {
		if stores[i].OwnerID == "" || stores[i].OwnerID != req.accountID {
			return &match{index: i, fixOwner: true, fixAccount: true}
		}
	}
	return nil
}

// ResolveOwnedStore returns the storefront owned by the account, walking the
// strategy chain in order. Matches past the first strategy persist their
// corrections before returning. Returns nil when no storefront can be
// bound; deterministic and idempotent for unchanged inputs and collections.
func (r *Resolver) ResolveOwnedStore(accountID, declaredStoreID string) *types.Storefront {
	if accountID == "" {
		return nil
	}

	req := request{accountID: accountID, declaredStoreID: declaredStoreID}
	stores := r.repo.Storefronts()

	for _, st := range r.strategies {
		m := st.fn(req, stores)
		if m == nil {
			continue
		}
		r.apply(req, stores, m)
		if st.name != "owner-match" {
			r.log.WithField("strategy", st.name).
				WithField("store_id", stores[m.index].ID).
				Info("storefront link repaired")
		}
		result := stores[m.index]
		return &result
	}

	r.log.WithField("account_id", accountID).Warn("no storefront resolved")
	return nil
}

// apply persists the corrections a match calls for.
func (r *Resolver) apply(req request, stores []types.Storefront, m *match) {
	if m.fixOwner {
		stores[m.index].OwnerID = req.accountID
		r.repo.SaveStorefronts(stores)
	}
	if m.fixAccount {
		accounts := r.repo.Accounts()
		for i := range accounts {
			if accounts[i].ID == req.accountID {
				accounts[i].StoreID = stores[m.index].ID
			}
		}
		r.repo.SaveAccounts(accounts)
	}
}
