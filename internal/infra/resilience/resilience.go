// Package resilience caps the number of requests the API works on at once.
package resilience

import (
	"context"
	"net/http"
	"time"
)

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
// Values below 1 are raised to 1.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}

// InFlight returns the number of slots currently held.
func (b *Bulkhead) InFlight() int {
	return len(b.sem)
}

// Capacity returns the maximum number of concurrent holders.
func (b *Bulkhead) Capacity() int {
	return cap(b.sem)
}

// Middleware admits a request once a slot is free. A request that waits
// longer than maxWait, or whose context ends first, is handed to reject.
func (b *Bulkhead) Middleware(maxWait time.Duration, reject http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), maxWait)
			err := b.Acquire(ctx)
			cancel()
			if err != nil {
				reject.ServeHTTP(w, r)
				return
			}
			defer b.Release()

			next.ServeHTTP(w, r)
		})
	}
}
