package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/types"
)

// fakeBackend is an in-memory remote tabular backend speaking the envelope
// protocol: POST inserts one row, GET filters by table_type.
type fakeBackend struct {
	mu    sync.Mutex
	rows  []row
	posts [][]byte // non-envelope POST bodies (owner registrations)
	fail  bool
	delay time.Duration
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.fail {
			http.Error(w, "backend unavailable", http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodPost:
			var body json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			var rw row
			if json.Unmarshal(body, &rw) == nil && rw.TableType != "" {
				f.rows = append(f.rows, rw)
			} else {
				f.posts = append(f.posts, body)
			}
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			table := r.URL.Query().Get("table_type")
			var out []row
			for _, rw := range f.rows {
				if rw.TableType == table {
					out = append(out, rw)
				}
			}
			json.NewEncoder(w).Encode(out)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (f *fakeBackend) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rw := range f.rows {
		if rw.TableType == table {
			n++
		}
	}
	return n
}

func newTestAdapter(t *testing.T, endpoint string) (*Adapter, *store.Repository) {
	t.Helper()
	repo := store.NewRepository(nil)
	if err := repo.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewAdapter(types.Config{DataDir: "x", MirrorEndpoint: endpoint}, repo, nil), repo
}

func TestPushDedup(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()
	a, _ := newTestAdapter(t, srv.URL)

	p := types.Product{ID: "p1", Name: "Juice", StoreID: "s1"}

	if err := a.Push(context.Background(), types.ProductsCollection, []any{p}); err != nil {
		t.Fatalf("first push failed: %v", err)
	}
	if err := a.Push(context.Background(), types.ProductsCollection, []any{p}); err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if got := backend.count(types.ProductsCollection); got != 1 {
		t.Fatalf("expected 1 remote row after duplicate push, got %d", got)
	}
}

func TestPushCustomerDedupByEmail(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()
	a, _ := newTestAdapter(t, srv.URL)

	first := types.Customer{ID: "c1", Email: "Kim@Example.com"}
	second := types.Customer{ID: "c2", Email: " kim@example.com "}

	if err := a.Push(context.Background(), types.CustomersCollection, []any{first, second}); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if got := backend.count(types.CustomersCollection); got != 1 {
		t.Fatalf("expected email dedup to keep 1 row, got %d", got)
	}
	if backend.rows[0].RecordID != "kim@example.com" {
		t.Fatalf("expected normalized email identity, got %q", backend.rows[0].RecordID)
	}
}

func TestPushDisabledAdapter(t *testing.T) {
	a, _ := newTestAdapter(t, "")
	if err := a.Push(context.Background(), types.ProductsCollection, []any{types.Product{ID: "p1"}}); err != nil {
		t.Fatalf("disabled push should be a no-op, got %v", err)
	}
}

func TestPull(t *testing.T) {
	t.Run("drops undecodable rows", func(t *testing.T) {
		backend := &fakeBackend{rows: []row{
			{TableType: "products", RecordID: "p1", Data: `{"id":"p1","name":"Juice"}`},
			{TableType: "products", RecordID: "bad", Data: `{broken`},
			{TableType: "products", RecordID: "empty", Data: ""},
		}}
		srv := httptest.NewServer(backend.handler())
		defer srv.Close()
		a, _ := newTestAdapter(t, srv.URL)

		records, err := a.Pull(context.Background(), types.ProductsCollection)
		if err != nil {
			t.Fatalf("pull failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 decodable record, got %d", len(records))
		}
	})

	t.Run("server failure yields empty plus SyncError", func(t *testing.T) {
		backend := &fakeBackend{fail: true}
		srv := httptest.NewServer(backend.handler())
		defer srv.Close()
		a, _ := newTestAdapter(t, srv.URL)

		records, err := a.Pull(context.Background(), types.OrdersCollection)
		if len(records) != 0 {
			t.Fatalf("expected empty records, got %d", len(records))
		}
		if err == nil || err.Op != "pull" || err.Table != types.OrdersCollection {
			t.Fatalf("expected pull SyncError, got %+v", err)
		}
	})

	t.Run("unreachable endpoint yields SyncError", func(t *testing.T) {
		a, _ := newTestAdapter(t, "http://127.0.0.1:0")
		_, err := a.Pull(context.Background(), types.ProductsCollection)
		if err == nil {
			t.Fatal("expected SyncError for unreachable endpoint")
		}
		var target *SyncError
		if !errors.As(error(err), &target) {
			t.Fatalf("expected *SyncError, got %T", err)
		}
	})
}

func TestMergeByKey(t *testing.T) {
	key := func(a types.Account) string { return a.ID }
	local := []types.Account{
		{ID: "a1", Name: "Local One"},
		{ID: "a2", Name: "Local Two"},
	}
	remote := []types.Account{
		{ID: "a1", Name: "Remote One"}, // conflicts with local, must lose
		{ID: "a3", Name: "Remote Three"},
	}

	merged := mergeByKey(local, remote, key)

	if len(merged) != 3 {
		t.Fatalf("expected 3 records, got %d", len(merged))
	}
	// Restriction to local keys is exactly the local records.
	if merged[0].Name != "Local One" || merged[1].Name != "Local Two" {
		t.Fatalf("remote overwrote local records: %+v", merged)
	}
	if merged[2].ID != "a3" {
		t.Fatalf("expected a3 appended, got %+v", merged[2])
	}

	t.Run("merge is idempotent", func(t *testing.T) {
		again := mergeByKey(merged, remote, key)
		if !reflect.DeepEqual(again, merged) {
			t.Fatalf("second merge changed the sequence: %+v", again)
		}
	})
}

func TestReconcile(t *testing.T) {
	backend := &fakeBackend{rows: []row{
		{TableType: "accounts", RecordID: "a1", Data: `{"id":"a1","name":"Remote Name","email":"a@example.com"}`},
		{TableType: "accounts", RecordID: "a2", Data: `{"id":"a2","name":"Second Device","email":"b@example.com"}`},
		{TableType: "customers", RecordID: "kim@example.com", Data: `{"id":"c9","name":"Kim Remote","email":"KIM@example.com"}`},
	}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()
	a, repo := newTestAdapter(t, srv.URL)

	repo.SaveAccounts([]types.Account{{ID: "a1", Name: "Local Name", Email: "a@example.com"}})
	repo.SaveCustomers([]types.Customer{{ID: "c1", Name: "Kim Local", Email: "kim@example.com"}})
	localOrder := types.Order{
		ID:      "o1",
		StoreID: "s1",
		Items:   []types.OrderItem{{ProductID: "p1", Name: "Pizza", Quantity: 1, Price: 32}},
		Total:   32,
	}
	repo.SaveOrders([]types.Order{localOrder})

	if err := a.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	accounts := repo.Accounts()
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Name != "Local Name" {
		t.Fatalf("remote overwrote local account: %+v", accounts[0])
	}

	// Customers merge on normalized email, not id.
	customers := repo.Customers()
	if len(customers) != 1 || customers[0].Name != "Kim Local" {
		t.Fatalf("expected email-keyed merge to keep local customer, got %+v", customers)
	}

	// Orders already present are never altered by a reconcile pass.
	orders := repo.Orders()
	if len(orders) != 1 || !reflect.DeepEqual(orders[0], localOrder) {
		t.Fatalf("reconcile mutated an existing order: %+v", orders)
	}
}

func TestVerifyStoreCode(t *testing.T) {
	t.Run("local hit needs no network", func(t *testing.T) {
		a, repo := newTestAdapter(t, "")
		repo.SaveStorefronts([]types.Storefront{{ID: "s1", Code: "ABC123"}})
		got := a.VerifyStoreCode(context.Background(), "abc123", time.Second)
		if got == nil || got.ID != "s1" {
			t.Fatalf("expected local storefront, got %+v", got)
		}
	})

	t.Run("remote hit is merged locally", func(t *testing.T) {
		backend := &fakeBackend{rows: []row{
			{TableType: "storefronts", RecordID: "s7", Data: `{"id":"s7","code":"XYZ789","name":"Remote Shop"}`},
		}}
		srv := httptest.NewServer(backend.handler())
		defer srv.Close()
		a, repo := newTestAdapter(t, srv.URL)

		got := a.VerifyStoreCode(context.Background(), "XYZ789", time.Second)
		if got == nil || got.ID != "s7" {
			t.Fatalf("expected remote storefront, got %+v", got)
		}
		if local := repo.StorefrontByCode("XYZ789"); local == nil {
			t.Fatal("expected remote storefront persisted locally")
		}
	})

	t.Run("slow backend falls back to local data", func(t *testing.T) {
		backend := &fakeBackend{delay: 300 * time.Millisecond}
		srv := httptest.NewServer(backend.handler())
		defer srv.Close()
		a, _ := newTestAdapter(t, srv.URL)

		got := a.VerifyStoreCode(context.Background(), "NOPE00", 50*time.Millisecond)
		if got != nil {
			t.Fatalf("expected nil on timeout with no local match, got %+v", got)
		}
	})
}

func TestRegisterOwner(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()
	a, _ := newTestAdapter(t, srv.URL)

	err := a.RegisterOwner(context.Background(), OwnerRegistration{
		Email:     "dana@example.com",
		Password:  "secret",
		StoreName: "Dana's Deli",
		WhatsApp:  "15551230000",
		Specialty: "both",
		FullName:  "Dana Silva",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if len(backend.posts) != 1 {
		t.Fatalf("expected 1 registration post, got %d", len(backend.posts))
	}
	var fields map[string]string
	if err := json.Unmarshal(backend.posts[0], &fields); err != nil {
		t.Fatal(err)
	}
	if fields["Specialty"] != "Sweet & Savory" {
		t.Fatalf("expected mapped specialty, got %q", fields["Specialty"])
	}
	if fields["Store Name"] != "Dana's Deli" || fields["Signup Date"] == "" {
		t.Fatalf("unexpected registration fields: %+v", fields)
	}
}
