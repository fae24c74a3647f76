package checkout

import (
	"context"
	"sync"
	"time"

	"scentpos/internal/domain"
)

// SearchFunc performs one customer lookup against the backend.
type SearchFunc func(ctx context.Context, query string, limit int) ([]domain.Customer, error)

// CustomerLookup debounces keystroke-triggered customer searches. Each
// new query cancels the in-flight request of the previous one, and a
// generation counter guarantees only the latest response reaches the
// apply callback, so a slow stale response can never overwrite newer
// results.
type CustomerLookup struct {
	search SearchFunc
	apply  func(query string, customers []domain.Customer, err error)
	delay  time.Duration
	limit  int

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewCustomerLookup(search SearchFunc, apply func(string, []domain.Customer, error), delay time.Duration, limit int) *CustomerLookup {
	if limit <= 0 {
		limit = 10
	}
	return &CustomerLookup{search: search, apply: apply, delay: delay, limit: limit}
}

// Query schedules a lookup after the debounce delay, superseding any
// pending or in-flight one.
func (l *CustomerLookup) Query(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	gen := l.gen
	if l.timer != nil {
		l.timer.Stop()
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	l.timer = time.AfterFunc(l.delay, func() {
		l.run(gen, query)
	})
}

func (l *CustomerLookup) run(gen uint64, query string) {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	customers, err := l.search(ctx, query, l.limit)

	l.mu.Lock()
	latest := gen == l.gen
	l.mu.Unlock()
	if !latest || ctx.Err() != nil {
		return
	}
	l.apply(query, customers, err)
}

// Close cancels any pending or in-flight lookup.
func (l *CustomerLookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
