package repair

import (
	"reflect"
	"testing"

	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/types"
)

func newTestRepo(t *testing.T) *store.Repository {
	t.Helper()
	repo := store.NewRepository(nil)
	if err := repo.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestResolveOwnedStore(t *testing.T) {
	t.Run("owner match wins without writes", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.SaveStorefronts([]types.Storefront{
			{ID: "s1", OwnerID: "other"},
			{ID: "s2", OwnerID: "u1"},
		})
		before := repo.Storefronts()

		got := NewResolver(repo, nil).ResolveOwnedStore("u1", "")
		if got == nil || got.ID != "s2" {
			t.Fatalf("expected s2, got %+v", got)
		}
		if !reflect.DeepEqual(repo.Storefronts(), before) {
			t.Fatal("healthy resolution must not rewrite the collection")
		}
	})

	t.Run("declared link corrects the owner side", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.SaveAccounts([]types.Account{{ID: "u1", StoreID: "s2"}})
		repo.SaveStorefronts([]types.Storefront{
			{ID: "s1", OwnerID: "other"},
			{ID: "s2", OwnerID: "stale"},
		})

		got := NewResolver(repo, nil).ResolveOwnedStore("u1", "s2")
		if got == nil || got.ID != "s2" {
			t.Fatalf("expected s2, got %+v", got)
		}
		if got.OwnerID != "u1" {
			t.Fatalf("expected corrected owner, got %q", got.OwnerID)
		}
		stores := repo.Storefronts()
		if stores[1].OwnerID != "u1" {
			t.Fatalf("correction not persisted: %+v", stores[1])
		}
		if stores[0].OwnerID != "other" {
			t.Fatalf("unrelated storefront touched: %+v", stores[0])
		}
	})

	t.Run("singleton is adopted on both sides", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.SaveAccounts([]types.Account{{ID: "u1"}})
		repo.SaveStorefronts([]types.Storefront{{ID: "s1", OwnerID: "someone_else"}})

		got := NewResolver(repo, nil).ResolveOwnedStore("u1", "")
		if got == nil || got.ID != "s1" || got.OwnerID != "u1" {
			t.Fatalf("expected adopted s1, got %+v", got)
		}
		if repo.Storefronts()[0].OwnerID != "u1" {
			t.Fatal("storefront side not persisted")
		}
		if repo.Accounts()[0].StoreID != "s1" {
			t.Fatal("account side not persisted")
		}
	})

	t.Run("best effort adoption picks the first candidate", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.SaveAccounts([]types.Account{{ID: "u1"}})
		repo.SaveStorefronts([]types.Storefront{
			{ID: "s1", OwnerID: ""},
			{ID: "s2", OwnerID: "other"},
		})

		got := NewResolver(repo, nil).ResolveOwnedStore("u1", "")
		if got == nil || got.ID != "s1" || got.OwnerID != "u1" {
			t.Fatalf("expected adopted s1, got %+v", got)
		}
	})

	t.Run("repair converges after one pass", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.SaveAccounts([]types.Account{{ID: "u1"}})
		repo.SaveStorefronts([]types.Storefront{{ID: "s1", OwnerID: "stale"}})
		r := NewResolver(repo, nil)

		first := r.ResolveOwnedStore("u1", "")
		afterFirst := repo.Storefronts()
		second := r.ResolveOwnedStore("u1", "")

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("resolution not stable: %+v vs %+v", first, second)
		}
		if !reflect.DeepEqual(repo.Storefronts(), afterFirst) {
			t.Fatal("second resolution changed the collection again")
		}
	})

	t.Run("nothing to bind yields nil without writes", func(t *testing.T) {
		repo := newTestRepo(t)
		r := NewResolver(repo, nil)
		if got := r.ResolveOwnedStore("u1", "s1"); got != nil {
			t.Fatalf("expected nil on empty collection, got %+v", got)
		}
		if got := r.ResolveOwnedStore("", "s1"); got != nil {
			t.Fatalf("expected nil for empty account id, got %+v", got)
		}
		if len(repo.Storefronts()) != 0 {
			t.Fatal("resolution wrote into an empty collection")
		}
	})
}

func TestStrategies(t *testing.T) {
	stores := []types.Storefront{
		{ID: "s1", OwnerID: "a"},
		{ID: "s2", OwnerID: "b"},
	}

	t.Run("declared link ignores a blank declaration", func(t *testing.T) {
		if m := matchDeclaredLink(request{accountID: "u1"}, stores); m != nil {
			t.Fatalf("expected nil, got %+v", m)
		}
	})

	t.Run("declared link without a write when already owned", func(t *testing.T) {
		m := matchDeclaredLink(request{accountID: "a", declaredStoreID: "s1"}, stores)
		if m == nil || m.index != 0 || m.fixOwner {
			t.Fatalf("expected clean match on s1, got %+v", m)
		}
	})

	t.Run("singleton adoption requires exactly one storefront", func(t *testing.T) {
		if m := adoptSingleton(request{accountID: "u1"}, stores); m != nil {
			t.Fatalf("expected nil for two storefronts, got %+v", m)
		}
		if m := adoptSingleton(request{accountID: "u1"}, nil); m != nil {
			t.Fatalf("expected nil for empty collection, got %+v", m)
		}
	})

	t.Run("declared link repair needs multiple storefronts", func(t *testing.T) {
		one := stores[:1]
		if m := repairDeclaredLink(request{accountID: "u1", declaredStoreID: "s1"}, one); m != nil {
			t.Fatalf("expected nil for single storefront, got %+v", m)
		}
		m := repairDeclaredLink(request{accountID: "u1", declaredStoreID: "s2"}, stores)
		if m == nil || m.index != 1 || !m.fixOwner {
			t.Fatalf("expected owner fix on s2, got %+v", m)
		}
	})
}
