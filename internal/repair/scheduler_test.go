package repair

import (
	"context"
	"testing"
	"time"

	"github.com/dukaforge/storefront/pkg/types"
)

func TestRefreshCascade(t *testing.T) {
	repo := newTestRepo(t)
	repo.SaveAccounts([]types.Account{{ID: "u1"}})
	repo.SaveStorefronts([]types.Storefront{{ID: "s1", OwnerID: "stale"}})

	delays := []time.Duration{0, time.Millisecond, time.Millisecond}
	sched := NewScheduler(NewResolver(repo, nil), delays, nil)

	var results []*types.Storefront
	done := sched.Refresh(context.Background(), "u1", "", func(s *types.Storefront) {
		results = append(results, s)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cascade did not finish")
	}

	if len(results) != len(delays) {
		t.Fatalf("expected %d attempts, got %d", len(delays), len(results))
	}
	for i, s := range results {
		if s == nil || s.ID != "s1" || s.OwnerID != "u1" {
			t.Fatalf("attempt %d resolved %+v", i, s)
		}
	}
}

func TestRefreshCancellation(t *testing.T) {
	repo := newTestRepo(t)
	repo.SaveAccounts([]types.Account{{ID: "u1"}})
	repo.SaveStorefronts([]types.Storefront{{ID: "s1", OwnerID: "u1"}})

	ctx, cancel := context.WithCancel(context.Background())
	delays := []time.Duration{0, time.Hour}
	sched := NewScheduler(NewResolver(repo, nil), delays, nil)

	attempts := make(chan struct{}, len(delays))
	done := sched.Refresh(ctx, "u1", "", func(*types.Storefront) {
		attempts <- struct{}{}
	})

	<-attempts // first attempt runs immediately
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation did not stop the cascade")
	}
	if len(attempts) != 0 {
		t.Fatalf("expected no attempts after cancel, got %d more", len(attempts))
	}
}

func TestNewSchedulerDefaults(t *testing.T) {
	sched := NewScheduler(NewResolver(newTestRepo(t), nil), nil, nil)
	if len(sched.delays) != len(DefaultDelays) {
		t.Fatalf("expected default delay list, got %v", sched.delays)
	}
}
