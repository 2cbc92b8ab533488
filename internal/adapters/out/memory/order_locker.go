// Package memory holds in-process adapters. OrderLocker serialises
// mutations of one order within a single service instance.
package memory

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

type orderLease struct {
	slot chan struct{}
	refs int
}

// OrderLocker hands out one lease per order. Entries are dropped when the
// last holder or waiter lets go, so the map only holds orders in flight.
type OrderLocker struct {
	mu     sync.Mutex
	leases map[kernel.UUID]*orderLease
	wait   time.Duration
}

// NewOrderLocker returns a locker that waits up to wait for a busy order;
// zero means a single attempt.
func NewOrderLocker(wait time.Duration) *OrderLocker {
	if wait < 0 {
		wait = 0
	}
	return &OrderLocker{
		leases: make(map[kernel.UUID]*orderLease),
		wait:   wait,
	}
}

// Acquire returns errs.ErrOrderBusy when the order stays locked for the
// whole wait, or the context error when ctx ends first. The returned
// release func is safe to call more than once.
func (l *OrderLocker) Acquire(ctx context.Context, orderID kernel.UUID) (func(), error) {
	lease := l.join(orderID)

	if !l.take(ctx, lease) {
		l.leave(orderID, lease)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewOrderBusyError(orderID.String())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lease.slot
			l.leave(orderID, lease)
		})
	}, nil
}

func (l *OrderLocker) take(ctx context.Context, lease *orderLease) bool {
	select {
	case lease.slot <- struct{}{}:
		return true
	default:
	}
	if l.wait == 0 {
		return false
	}

	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case lease.slot <- struct{}{}:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func (l *OrderLocker) join(orderID kernel.UUID) *orderLease {
	l.mu.Lock()
	defer l.mu.Unlock()

	lease, ok := l.leases[orderID]
	if !ok {
		lease = &orderLease{slot: make(chan struct{}, 1)}
		l.leases[orderID] = lease
	}
	lease.refs++
	return lease
}

func (l *OrderLocker) leave(orderID kernel.UUID, lease *orderLease) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lease.refs--
	if lease.refs == 0 {
		delete(l.leases, orderID)
	}
}

// InFlight reports how many orders currently have a holder or waiter.
func (l *OrderLocker) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.leases)
}
