// Package store implements the local entity collection store. Collections
// are whole JSON-serialized sequences kept under fixed keys in a single
// SQLite table; every read returns a usable value even when the underlying
// row is missing or corrupted, and every write replaces the full sequence.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dukaforge/storefront/pkg/logger"
	"github.com/dukaforge/storefront/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Repository provides typed read/write access to the five record
// collections and the two session singletons. It is constructed once at
// process start and injected into callers; Open and Close bound its
// lifecycle.
type Repository struct {
	mu   sync.RWMutex
	open bool
	cfg  types.Config
	db   *sql.DB
	log  logger.Logger
}

// NewRepository creates an unopened Repository. Call Open with a Config
// before use.
func NewRepository(log logger.Logger) *Repository {
	if log == nil {
		log = logger.NewNop()
	}
	return &Repository{log: log}
}

// Open initializes the repository. Creates DataDir if it does not exist and
// applies the schema. Returns ErrAlreadyOpen if called while open.
func (r *Repository) Open(cfg types.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.open {
		return types.ErrAlreadyOpen
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(cfg.DataDir, "storefront.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	r.db = db
	r.cfg = cfg
	r.open = true
	return nil
}

// Close releases the underlying database. Idempotent; after Close all reads
// return empty values and all writes are dropped.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			return err
		}
		r.db = nil
	}
	r.open = false
	return nil
}

// load decodes the value under key into v. A missing row, a malformed
// payload, or a closed repository all decode as "absent": load returns
// false and leaves v untouched, never an error.
func (r *Repository) load(key string, v any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.open {
		return false
	}
	var raw string
	err := r.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		r.log.WithField("key", key).Warn("collection read failed, treating as absent")
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		r.log.WithField("key", key).Warn("collection value malformed, treating as absent")
		return false
	}
	return true
}

// save serializes v and overwrites the value under key. On write failure it
// deletes the existing row and retries once, then logs and gives up; the
// failure never reaches the caller.
func (r *Repository) save(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		r.log.WithField("key", key).Warn("write dropped, repository closed")
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.WithField("key", key).Error("collection value not serializable, write dropped")
		return
	}

	const upsert = `
		INSERT INTO collections (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.Exec(upsert, key, string(raw)); err == nil {
		return
	}

	// Clear-and-rewrite retry, then abandon.
	_, _ = r.db.Exec("DELETE FROM collections WHERE key = ?", key)
	if _, err := r.db.Exec(upsert, key, string(raw)); err != nil {
		r.log.WithField("key", key).Error("collection write failed after retry")
	}
}

// Accounts returns the full account collection, empty when absent.
func (r *Repository) Accounts() []types.Account {
	var out []types.Account
	r.load(types.AccountsCollection, &out)
	return out
}

// SaveAccounts replaces the account collection.
func (r *Repository) SaveAccounts(accounts []types.Account) {
	r.save(types.AccountsCollection, accounts)
}

// Storefronts returns the full storefront collection, empty when absent.
func (r *Repository) Storefronts() []types.Storefront {
	var out []types.Storefront
	r.load(types.StorefrontsCollection, &out)
	return out
}

// SaveStorefronts replaces the storefront collection.
func (r *Repository) SaveStorefronts(stores []types.Storefront) {
	r.save(types.StorefrontsCollection, stores)
}

// Products returns the full catalog collection, empty when absent.
func (r *Repository) Products() []types.Product {
	var out []types.Product
	r.load(types.ProductsCollection, &out)
	return out
}

// SaveProducts replaces the catalog collection.
func (r *Repository) SaveProducts(products []types.Product) {
	r.save(types.ProductsCollection, products)
}

// Orders returns the full order collection, empty when absent.
func (r *Repository) Orders() []types.Order {
	var out []types.Order
	r.load(types.OrdersCollection, &out)
	return out
}

// SaveOrders replaces the order collection. Orders are append-only by
// convention: callers append to the slice returned by Orders and write the
// whole sequence back.
func (r *Repository) SaveOrders(orders []types.Order) {
	r.save(types.OrdersCollection, orders)
}

// Customers returns the full customer collection, empty when absent.
func (r *Repository) Customers() []types.Customer {
	var out []types.Customer
	r.load(types.CustomersCollection, &out)
	return out
}

// SaveCustomers replaces the customer collection.
func (r *Repository) SaveCustomers(customers []types.Customer) {
	r.save(types.CustomersCollection, customers)
}

// StorefrontByCode finds a storefront by its shareable code, compared
// case-insensitively. Linear scan; collections are small.
func (r *Repository) StorefrontByCode(code string) *types.Storefront {
	want := types.NormalizeStoreCode(code)
	if want == "" {
		return nil
	}
	for _, s := range r.Storefronts() {
		if types.NormalizeStoreCode(s.Code) == want {
			return &s
		}
	}
	return nil
}

// CurrentAccount returns a snapshot of the signed-in account, or nil.
func (r *Repository) CurrentAccount() *types.Account {
	var out *types.Account
	r.load(types.CurrentAccountKey, &out)
	return out
}

// SetCurrentAccount stores a snapshot of the signed-in account. Passing nil
// signs the account out.
func (r *Repository) SetCurrentAccount(a *types.Account) {
	r.save(types.CurrentAccountKey, a)
}

// CurrentCustomer returns a snapshot of the signed-in customer, or nil.
func (r *Repository) CurrentCustomer() *types.Customer {
	var out *types.Customer
	r.load(types.CurrentCustomerKey, &out)
	return out
}

// SetCurrentCustomer stores a snapshot of the signed-in customer. Passing
// nil signs the customer out.
func (r *Repository) SetCurrentCustomer(c *types.Customer) {
	r.save(types.CurrentCustomerKey, c)
}

// Initialized reports whether the one-time seed has run.
func (r *Repository) Initialized() bool {
	var out bool
	r.load(types.InitializedKey, &out)
	return out
}

// SetInitialized records that the one-time seed has run.
func (r *Repository) SetInitialized(v bool) {
	r.save(types.InitializedKey, v)
}

// Reset clears every collection and singleton, then reseeds the demo data.
func (r *Repository) Reset() {
	r.mu.Lock()
	if r.open {
		if _, err := r.db.Exec("DELETE FROM collections"); err != nil {
			r.log.Error("reset failed to clear collections")
		}
	}
	r.mu.Unlock()
	r.Seed()
}
