// This file implements the refresh cascade: resolution re-runs after fixed
// delays to absorb the race between a registration write and a dependent
// read, without locks. Cancellation stops pending attempts.
package repair

import (
	"context"
	"time"

	"github.com/dukaforge/storefront/pkg/logger"
	"github.com/dukaforge/storefront/pkg/types"
)

// DefaultDelays is the standard retry cascade: one immediate attempt, one
// shortly after, one to catch slow persistence side effects.
var DefaultDelays = []time.Duration{0, 200 * time.Millisecond, 500 * time.Millisecond}

// Scheduler re-runs storefront resolution on a bounded delay list after a
// login or an explicit refresh request.
type Scheduler struct {
	resolver *Resolver
	delays   []time.Duration
	log      logger.Logger
}

// NewScheduler creates a Scheduler. A nil delay list uses DefaultDelays.
func NewScheduler(resolver *Resolver, delays []time.Duration, log logger.Logger) *Scheduler {
	if delays == nil {
		delays = DefaultDelays
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Scheduler{resolver: resolver, delays: delays, log: log}
}

// Refresh runs the resolution cascade against fixed inputs, invoking
// onStore with each attempt's result so the caller can update its visible
// storefront state. It returns immediately; the returned channel closes
// when the cascade finishes or ctx is canceled.
func (s *Scheduler) Refresh(ctx context.Context, accountID, declaredStoreID string, onStore func(*types.Storefront)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, delay := range s.delays {
			if delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					s.log.Debug("refresh cascade canceled")
					return
				case <-timer.C:
				}
			} else if ctx.Err() != nil {
				return
			}
			if onStore != nil {
				onStore(s.resolver.ResolveOwnedStore(accountID, declaredStoreID))
			}
		}
	}()
	return done
}
