// Package shop is the application service over the storefront core. It owns
// the flows the UI calls into: registration, sign-in, catalog edits,
// checkout order capture and customer amendments. Validation happens here,
// synchronously, before any record is written; replication to the remote
// mirror is fired and forgotten.
package shop

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukaforge/storefront/internal/mirror"
	"github.com/dukaforge/storefront/internal/repair"
	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/logger"
	"github.com/dukaforge/storefront/pkg/types"
)

// Service wires the collection store, the remote mirror and the repair
// engine behind the operations the UI consumes.
type Service struct {
	repo     *store.Repository
	mirror   *mirror.Adapter
	resolver *repair.Resolver
	log      logger.Logger
}

// NewService creates a Service over an opened repository.
func NewService(repo *store.Repository, m *mirror.Adapter, resolver *repair.Resolver, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, mirror: m, resolver: resolver, log: log}
}

// Initialize seeds the demo data once and kicks off a background reconcile
// against the remote mirror. Startup never blocks on the network.
func (s *Service) Initialize(ctx context.Context) {
	s.repo.Seed()
	go func() {
		if err := s.mirror.Reconcile(ctx); err != nil {
			s.log.Warn(err.Error())
		}
	}()
}

// OwnedStore resolves the storefront owned by the signed-in account,
// repairing the ownership link if needed. Returns ErrNotSignedIn when no
// account is signed in and nil when no storefront can be bound.
func (s *Service) OwnedStore() (*types.Storefront, error) {
	account := s.repo.CurrentAccount()
	if account == nil {
		return nil, types.ErrNotSignedIn
	}
	return s.resolver.ResolveOwnedStore(account.ID, account.StoreID), nil
}

// newID generates a UUID v7 record id, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// asAny widens a typed record slice for the mirror's push interface.
func asAny[T any](records []T) []any {
	out := make([]any, len(records))
	for i, rec := range records {
		out[i] = rec
	}
	return out
}

// pushAsync replicates a collection in the background. Failures are logged
// inside the adapter; nothing surfaces here.
func (s *Service) pushAsync(table string, records []any) {
	go func() {
		_ = s.mirror.Push(context.Background(), table, records)
	}()
}
